package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// AdmissionResultRepository 合否結果データアクセス
type AdmissionResultRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]model.AdmissionResult, error)
	// ReplaceByStudent 既存結果を全件削除し、新リストで作り直す（1トランザクション）
	ReplaceByStudent(ctx context.Context, studentID string, results []model.AdmissionResult) error
}

type admissionResultRepo struct {
	db *gorm.DB
}

// NewAdmissionResultRepo AdmissionResultRepository を生成する
func NewAdmissionResultRepo(db *gorm.DB) AdmissionResultRepository {
	return &admissionResultRepo{db: db}
}

func (r *admissionResultRepo) ListByStudent(ctx context.Context, studentID string) ([]model.AdmissionResult, error) {
	var results []model.AdmissionResult
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("rank ASC, created_at ASC").
		Find(&results).Error
	return results, err
}

func (r *admissionResultRepo) ReplaceByStudent(ctx context.Context, studentID string, results []model.AdmissionResult) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", studentID).
			Delete(&model.AdmissionResult{}).Error; err != nil {
			return err
		}
		if len(results) == 0 {
			return nil
		}
		for i := range results {
			results[i].StudentID = studentID
		}
		return tx.Create(&results).Error
	})
}
