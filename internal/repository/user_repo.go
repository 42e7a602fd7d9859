package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// ArchivedUserFilter アーカイブ済みユーザー検索条件
type ArchivedUserFilter struct {
	Role     string   // 空なら全役割
	Year     *int     // アーカイブ年度
	School   string   // 合否結果の学校名（部分一致）
	Statuses []string // 合否ステータス（いずれかに一致）
}

// UserRepository ユーザーデータアクセス
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	ListActiveByRole(ctx context.Context, role string) ([]model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
	ListArchived(ctx context.Context, filter ArchivedUserFilter) ([]model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo UserRepository を生成する
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// ListActiveByRole 有効かつ未アーカイブのユーザーを役割で絞り込む
func (r *userRepo) ListActiveByRole(ctx context.Context, role string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = TRUE AND archived_at IS NULL", role).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

// ListArchived アーカイブ済みユーザーを検索する。
// 学校名・合否ステータス条件は合否結果テーブルとの EXISTS 副問合せで評価する。
func (r *userRepo) ListArchived(ctx context.Context, filter ArchivedUserFilter) ([]model.User, error) {
	db := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("archived_at IS NOT NULL")

	if filter.Role != "" {
		db = db.Where("role = ?", filter.Role)
	}
	if filter.Year != nil {
		db = db.Where("archive_year = ?", *filter.Year)
	}
	if filter.School != "" || len(filter.Statuses) > 0 {
		sub := r.db.Model(&model.AdmissionResult{}).
			Select("1").
			Where("admission_results.student_id = users.id")
		if filter.School != "" {
			sub = sub.Where("admission_results.school_name ILIKE ?", "%"+filter.School+"%")
		}
		if len(filter.Statuses) > 0 {
			sub = sub.Where("admission_results.status IN ?", filter.Statuses)
		}
		db = db.Where("EXISTS (?)", sub)
	}

	var users []model.User
	err := db.Order("archived_at DESC").Find(&users).Error
	return users, err
}
