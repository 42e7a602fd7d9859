package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// GlobalSettingRepository グローバル設定データアクセス
type GlobalSettingRepository interface {
	Get(ctx context.Context, key string) (*model.GlobalSetting, error)
	Upsert(ctx context.Context, setting *model.GlobalSetting) error
	List(ctx context.Context) ([]model.GlobalSetting, error)
}

type globalSettingRepo struct {
	db *gorm.DB
}

// NewGlobalSettingRepo GlobalSettingRepository を生成する
func NewGlobalSettingRepo(db *gorm.DB) GlobalSettingRepository {
	return &globalSettingRepo{db: db}
}

func (r *globalSettingRepo) Get(ctx context.Context, key string) (*model.GlobalSetting, error) {
	var setting model.GlobalSetting
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *globalSettingRepo) Upsert(ctx context.Context, setting *model.GlobalSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
		}).
		Create(setting).Error
}

func (r *globalSettingRepo) List(ctx context.Context) ([]model.GlobalSetting, error) {
	var settings []model.GlobalSetting
	err := r.db.WithContext(ctx).
		Order("key ASC").
		Find(&settings).Error
	return settings, err
}
