package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// BookingRepository 予約データアクセス
type BookingRepository interface {
	// CreateChecked シフト行をロックした上で枠占有・生徒重複を再検証して作成する。
	// 個別枠が埋まっていれば ErrSlotTaken、生徒の時間重複は ErrStudentOverlap を返す。
	CreateChecked(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	HasConfirmedForShift(ctx context.Context, shiftID string) (bool, error)
	StudentHasOverlap(ctx context.Context, studentID string, start, end time.Time) (bool, error)
	ListConfirmedByStudent(ctx context.Context, studentID string) ([]model.Booking, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]model.Booking, error)
	CountCompletedByInstructor(ctx context.Context, instructorID string, from, to time.Time) (int64, error)
	Delete(ctx context.Context, id string) error
}

type bookingRepo struct {
	db *gorm.DB
}

// NewBookingRepo BookingRepository を生成する
func NewBookingRepo(db *gorm.DB) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) CreateChecked(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// シフト行ロックで同一枠への予約書き込みを直列化する
		var shift model.Shift
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", booking.ShiftID).
			First(&shift).Error; err != nil {
			return err
		}

		// 生徒行もロックし、別シフトへの同時予約による重複を防ぐ
		var student model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", booking.StudentID).
			First(&student).Error; err != nil {
			return err
		}

		if shift.Type == model.ShiftTypeIndividual {
			var taken int64
			if err := tx.Model(&model.Booking{}).
				Where("shift_id = ? AND status = ?", shift.ID, model.BookingStatusConfirmed).
				Count(&taken).Error; err != nil {
				return err
			}
			if taken > 0 {
				return ErrSlotTaken
			}
		}

		var overlap int64
		if err := tx.Model(&model.Booking{}).
			Joins("JOIN shifts ON shifts.id = bookings.shift_id").
			Where("bookings.student_id = ? AND bookings.status = ?",
				booking.StudentID, model.BookingStatusConfirmed).
			Where("shifts.start_time < ? AND shifts.end_time > ?", shift.EndTime, shift.StartTime).
			Count(&overlap).Error; err != nil {
			return err
		}
		if overlap > 0 {
			return ErrStudentOverlap
		}

		return tx.Create(booking).Error
	})
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Preload("Shift.Instructor").
		Preload("Student").
		Preload("Report").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepo) HasConfirmedForShift(ctx context.Context, shiftID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("shift_id = ? AND status = ?", shiftID, model.BookingStatusConfirmed).
		Count(&count).Error
	return count > 0, err
}

func (r *bookingRepo) StudentHasOverlap(ctx context.Context, studentID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Joins("JOIN shifts ON shifts.id = bookings.shift_id").
		Where("bookings.student_id = ? AND bookings.status = ?", studentID, model.BookingStatusConfirmed).
		Where("shifts.start_time < ? AND shifts.end_time > ?", end, start).
		Count(&count).Error
	return count > 0, err
}

func (r *bookingRepo) ListConfirmedByStudent(ctx context.Context, studentID string) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Preload("Shift.Instructor").
		Preload("Report").
		Joins("JOIN shifts ON shifts.id = bookings.shift_id").
		Where("bookings.student_id = ? AND bookings.status = ?", studentID, model.BookingStatusConfirmed).
		Order("shifts.start_time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepo) ListByInstructor(ctx context.Context, instructorID string) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Preload("Student").
		Preload("Report").
		Joins("JOIN shifts ON shifts.id = bookings.shift_id").
		Where("shifts.instructor_id = ?", instructorID).
		Order("shifts.start_time DESC").
		Find(&bookings).Error
	return bookings, err
}

// CountCompletedByInstructor 期間内に終了した確定予約（実施授業）の数
func (r *bookingRepo) CountCompletedByInstructor(ctx context.Context, instructorID string, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Joins("JOIN shifts ON shifts.id = bookings.shift_id").
		Where("shifts.instructor_id = ? AND bookings.status = ?", instructorID, model.BookingStatusConfirmed).
		Where("shifts.end_time >= ? AND shifts.end_time < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *bookingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Booking{}).Error
}
