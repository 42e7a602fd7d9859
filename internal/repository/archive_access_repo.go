package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// ArchiveAccessRepository アーカイブ閲覧権限データアクセス
type ArchiveAccessRepository interface {
	// Grant 権限を付与する。付与済みペアへの再付与は何もしない（冪等）。
	Grant(ctx context.Context, access *model.ArchiveAccess) error
	// Revoke 権限を取り消す。存在しないペアでも成功する（冪等）。
	Revoke(ctx context.Context, instructorID, studentID string) error
	Exists(ctx context.Context, instructorID, studentID string) (bool, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]model.ArchiveAccess, error)
	ListAll(ctx context.Context) ([]model.ArchiveAccess, error)
}

type archiveAccessRepo struct {
	db *gorm.DB
}

// NewArchiveAccessRepo ArchiveAccessRepository を生成する
func NewArchiveAccessRepo(db *gorm.DB) ArchiveAccessRepository {
	return &archiveAccessRepo{db: db}
}

func (r *archiveAccessRepo) Grant(ctx context.Context, access *model.ArchiveAccess) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "instructor_id"}, {Name: "student_id"}},
			DoNothing: true,
		}).
		Create(access).Error
}

func (r *archiveAccessRepo) Revoke(ctx context.Context, instructorID, studentID string) error {
	return r.db.WithContext(ctx).
		Where("instructor_id = ? AND student_id = ?", instructorID, studentID).
		Delete(&model.ArchiveAccess{}).Error
}

func (r *archiveAccessRepo) Exists(ctx context.Context, instructorID, studentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ArchiveAccess{}).
		Where("instructor_id = ? AND student_id = ?", instructorID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *archiveAccessRepo) ListByInstructor(ctx context.Context, instructorID string) ([]model.ArchiveAccess, error) {
	var accesses []model.ArchiveAccess
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&accesses).Error
	return accesses, err
}

func (r *archiveAccessRepo) ListAll(ctx context.Context) ([]model.ArchiveAccess, error) {
	var accesses []model.ArchiveAccess
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Preload("Student").
		Order("created_at DESC").
		Find(&accesses).Error
	return accesses, err
}
