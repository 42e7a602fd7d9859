package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/repository"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/timeutil"
)

// UserService ユーザービジネスロジック
type UserService interface {
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	// ListInstructors 生徒向けの講師一覧（有効かつ未アーカイブのみ）
	ListInstructors(ctx context.Context) ([]dto.UserResponse, error)
	// AdminList 管理者向け全ユーザー一覧。講師には稼働統計を付与する
	AdminList(ctx context.Context) ([]dto.AdminUserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewUserService UserService を生成する
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger, now: time.Now}
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("ユーザー検索に失敗", zap.Error(err))
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) ListInstructors(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListActiveByRole(ctx, model.RoleInstructor)
	if err != nil {
		s.logger.Error("講師一覧の取得に失敗", zap.Error(err))
		return nil, err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return out, nil
}

func (s *userService) AdminList(ctx context.Context) ([]dto.AdminUserResponse, error) {
	users, err := s.repo.User.ListAll(ctx)
	if err != nil {
		s.logger.Error("ユーザー一覧の取得に失敗", zap.Error(err))
		return nil, err
	}

	now := s.now().In(timeutil.JST)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, timeutil.JST)
	monthEnd := monthStart.AddDate(0, 1, 0)
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, timeutil.JST)
	farPast := time.Time{}

	out := make([]dto.AdminUserResponse, 0, len(users))
	for i := range users {
		row := dto.AdminUserResponse{UserResponse: dto.NewUserResponse(&users[i])}
		if users[i].Role == model.RoleInstructor {
			stats, err := s.instructorStats(ctx, users[i].ID, monthStart, monthEnd, yearStart, farPast, now)
			if err != nil {
				return nil, err
			}
			row.Stats = stats
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *userService) instructorStats(
	ctx context.Context,
	instructorID string,
	monthStart, monthEnd, yearStart, farPast, now time.Time,
) (*dto.InstructorStats, error) {
	shiftsMonth, err := s.repo.Shift.CountByInstructor(ctx, instructorID, monthStart, monthEnd)
	if err != nil {
		s.logger.Error("シフト数の集計に失敗", zap.Error(err))
		return nil, err
	}
	lessonsMonth, err := s.repo.Booking.CountCompletedByInstructor(ctx, instructorID, monthStart, now)
	if err != nil {
		s.logger.Error("授業数の集計に失敗", zap.Error(err))
		return nil, err
	}
	lessonsYear, err := s.repo.Booking.CountCompletedByInstructor(ctx, instructorID, yearStart, now)
	if err != nil {
		s.logger.Error("授業数の集計に失敗", zap.Error(err))
		return nil, err
	}
	lessonsTotal, err := s.repo.Booking.CountCompletedByInstructor(ctx, instructorID, farPast, now)
	if err != nil {
		s.logger.Error("授業数の集計に失敗", zap.Error(err))
		return nil, err
	}

	return &dto.InstructorStats{
		ShiftsThisMonth:  shiftsMonth,
		LessonsThisMonth: lessonsMonth,
		LessonsThisYear:  lessonsYear,
		LessonsTotal:     lessonsTotal,
	}, nil
}
