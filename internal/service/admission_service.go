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

// AdmissionService 合否結果ビジネスロジック
// 編集は全件置き換え方式。部分更新は提供しない。
type AdmissionService interface {
	List(ctx context.Context, studentID string) ([]dto.AdmissionResultResponse, error)
	Replace(ctx context.Context, studentID string, req *dto.ReplaceAdmissionResultsRequest) ([]dto.AdmissionResultResponse, error)
}

type admissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAdmissionService AdmissionService を生成する
func NewAdmissionService(repo *repository.Repository, logger *zap.Logger) AdmissionService {
	return &admissionService{repo: repo, logger: logger}
}

func (s *admissionService) List(ctx context.Context, studentID string) ([]dto.AdmissionResultResponse, error) {
	results, err := s.repo.AdmissionResult.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("合否結果の取得に失敗", zap.Error(err))
		return nil, err
	}
	return dto.NewAdmissionResultResponses(results), nil
}

func (s *admissionService) Replace(ctx context.Context, studentID string, req *dto.ReplaceAdmissionResultsRequest) ([]dto.AdmissionResultResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("生徒の検索に失敗", zap.Error(err))
		return nil, err
	}

	results := make([]model.AdmissionResult, 0, len(req.Results))
	for _, in := range req.Results {
		results = append(results, model.AdmissionResult{
			StudentID:  studentID,
			SchoolName: in.SchoolName,
			Department: in.Department,
			Rank:       in.Rank,
			Status:     in.Status,
		})
	}

	if err := s.repo.AdmissionResult.ReplaceByStudent(ctx, studentID, results); err != nil {
		s.logger.Error("合否結果の置き換えに失敗", zap.Error(err))
		return nil, err
	}

	s.logger.Info("合否結果置き換え完了",
		zap.String("student_id", studentID),
		zap.Int("count", len(results)),
	)
	return dto.NewAdmissionResultResponses(results), nil
}
