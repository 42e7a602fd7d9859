package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// ReportRepository カルテデータアクセス
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	GetByBookingID(ctx context.Context, bookingID string) (*model.Report, error)
	ExistsByBookingID(ctx context.Context, bookingID string) (bool, error)
}

type reportRepo struct {
	db *gorm.DB
}

// NewReportRepo ReportRepository を生成する
func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepo) GetByBookingID(ctx context.Context, bookingID string) (*model.Report, error) {
	var report model.Report
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) ExistsByBookingID(ctx context.Context, bookingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	return count > 0, err
}
