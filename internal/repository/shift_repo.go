package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// ShiftRepository シフトデータアクセス
type ShiftRepository interface {
	// CreateChecked 講師行をロックした上で重複を再検証して作成する。
	// 重複時は ErrShiftOverlap を返す。
	CreateChecked(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	// HasOverlap 半開区間 [start, end) による重複事前チェック
	HasOverlap(ctx context.Context, instructorID string, start, end time.Time) (bool, error)
	ListByInstructor(ctx context.Context, instructorID string, from time.Time) ([]model.Shift, error)
	ListPublishedByInstructor(ctx context.Context, instructorID string, from time.Time) ([]model.Shift, error)
	ListAllFrom(ctx context.Context, from time.Time) ([]model.Shift, error)
	CountByInstructor(ctx context.Context, instructorID string, from, to time.Time) (int64, error)
	// DeleteWithBookings シフトと紐づく予約を1トランザクションで削除する
	DeleteWithBookings(ctx context.Context, id string) error
}

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo ShiftRepository を生成する
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func overlapCond(db *gorm.DB, instructorID string, start, end time.Time) *gorm.DB {
	return db.Where(
		"instructor_id = ? AND start_time < ? AND end_time > ?",
		instructorID, end, start,
	)
}

func (r *shiftRepo) CreateChecked(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 講師のユーザー行をロックし、同一講師のシフト書き込みを直列化する
		var instructor model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", shift.InstructorID).
			First(&instructor).Error; err != nil {
			return err
		}

		var conflicts int64
		if err := overlapCond(
			tx.Model(&model.Shift{}), shift.InstructorID, shift.StartTime, shift.EndTime,
		).Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrShiftOverlap
		}

		return tx.Create(shift).Error
	})
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Preload("Bookings", "status = ?", model.BookingStatusConfirmed).
		Preload("Bookings.Student").
		Where("id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) HasOverlap(ctx context.Context, instructorID string, start, end time.Time) (bool, error) {
	var count int64
	err := overlapCond(
		r.db.WithContext(ctx).Model(&model.Shift{}), instructorID, start, end,
	).Count(&count).Error
	return count > 0, err
}

func (r *shiftRepo) ListByInstructor(ctx context.Context, instructorID string, from time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("Bookings", "status = ?", model.BookingStatusConfirmed).
		Preload("Bookings.Student").
		Preload("Bookings.Report").
		Where("instructor_id = ? AND start_time >= ?", instructorID, from).
		Order("start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListPublishedByInstructor(ctx context.Context, instructorID string, from time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("Bookings", "status = ?", model.BookingStatusConfirmed).
		Where("instructor_id = ? AND is_published = TRUE AND start_time >= ?", instructorID, from).
		Order("start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListAllFrom(ctx context.Context, from time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Preload("Bookings", "status = ?", model.BookingStatusConfirmed).
		Preload("Bookings.Student").
		Where("start_time >= ?", from).
		Order("start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) CountByInstructor(ctx context.Context, instructorID string, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("instructor_id = ? AND is_published = TRUE AND start_time >= ? AND start_time < ?",
			instructorID, from, to).
		Count(&count).Error
	return count, err
}

func (r *shiftRepo) DeleteWithBookings(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shift_id = ?", id).Delete(&model.Booking{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Shift{}).Error
	})
}
