package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/repository"
)

var ErrSettingNotFound = errors.New("設定が見つかりません")

// SettingService グローバル設定ビジネスロジック
type SettingService interface {
	Get(ctx context.Context, key string) (*dto.SettingResponse, error)
	Upsert(ctx context.Context, req *dto.UpsertSettingRequest) (*dto.SettingResponse, error)
	List(ctx context.Context) ([]dto.SettingResponse, error)
}

type settingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingService SettingService を生成する
func NewSettingService(repo *repository.Repository, logger *zap.Logger) SettingService {
	return &settingService{repo: repo, logger: logger}
}

func (s *settingService) Get(ctx context.Context, key string) (*dto.SettingResponse, error) {
	setting, err := s.repo.GlobalSetting.Get(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		s.logger.Error("設定の取得に失敗", zap.Error(err))
		return nil, err
	}
	resp := dto.NewSettingResponse(setting)
	return &resp, nil
}

func (s *settingService) Upsert(ctx context.Context, req *dto.UpsertSettingRequest) (*dto.SettingResponse, error) {
	setting := &model.GlobalSetting{
		Key:         req.Key,
		Value:       req.Value,
		Description: req.Description,
	}
	if err := s.repo.GlobalSetting.Upsert(ctx, setting); err != nil {
		s.logger.Error("設定の保存に失敗", zap.Error(err))
		return nil, err
	}

	s.logger.Info("設定保存完了", zap.String("key", req.Key))

	resp := dto.NewSettingResponse(setting)
	return &resp, nil
}

func (s *settingService) List(ctx context.Context) ([]dto.SettingResponse, error) {
	settings, err := s.repo.GlobalSetting.List(ctx)
	if err != nil {
		s.logger.Error("設定一覧の取得に失敗", zap.Error(err))
		return nil, err
	}

	out := make([]dto.SettingResponse, 0, len(settings))
	for i := range settings {
		out = append(out, dto.NewSettingResponse(&settings[i]))
	}
	return out, nil
}
