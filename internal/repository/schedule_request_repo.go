package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// ScheduleRequestRepository 日程リクエストデータアクセス
type ScheduleRequestRepository interface {
	Create(ctx context.Context, request *model.ScheduleRequest) error
	GetByID(ctx context.Context, id string) (*model.ScheduleRequest, error)
	ListPendingByInstructor(ctx context.Context, instructorID string) ([]model.ScheduleRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.ScheduleRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// Approve ステータス更新・シフト作成・確定予約作成を1トランザクションで行う
	Approve(ctx context.Context, request *model.ScheduleRequest, shift *model.Shift, booking *model.Booking) error
}

type scheduleRequestRepo struct {
	db *gorm.DB
}

// NewScheduleRequestRepo ScheduleRequestRepository を生成する
func NewScheduleRequestRepo(db *gorm.DB) ScheduleRequestRepository {
	return &scheduleRequestRepo{db: db}
}

func (r *scheduleRequestRepo) Create(ctx context.Context, request *model.ScheduleRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *scheduleRequestRepo) GetByID(ctx context.Context, id string) (*model.ScheduleRequest, error) {
	var request model.ScheduleRequest
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Instructor").
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *scheduleRequestRepo) ListPendingByInstructor(ctx context.Context, instructorID string) ([]model.ScheduleRequest, error) {
	var requests []model.ScheduleRequest
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("instructor_id = ? AND status = ?", instructorID, model.RequestStatusPending).
		Order("start_time ASC").
		Find(&requests).Error
	return requests, err
}

func (r *scheduleRequestRepo) ListByStudent(ctx context.Context, studentID string) ([]model.ScheduleRequest, error) {
	var requests []model.ScheduleRequest
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *scheduleRequestRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.ScheduleRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *scheduleRequestRepo) Approve(ctx context.Context, request *model.ScheduleRequest, shift *model.Shift, booking *model.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ScheduleRequest{}).
			Where("id = ?", request.ID).
			Update("status", model.RequestStatusApproved).Error; err != nil {
			return err
		}
		if err := tx.Create(shift).Error; err != nil {
			return err
		}
		booking.ShiftID = shift.ID
		return tx.Create(booking).Error
	})
}
