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

var (
	ErrShiftNotFound      = errors.New("シフトが見つかりません")
	ErrShiftOverlap       = errors.New("同時間帯に既にシフトが存在します")
	ErrShiftForbidden     = errors.New("このシフトを操作する権限がありません")
	ErrShiftDeleteTooLate = errors.New("授業開始24時間前を切っているため削除できません。")
	ErrNotInstructor      = errors.New("指定されたユーザーは講師ではありません")
)

// 削除・予約の締切は授業開始の24時間前
const lessonCutoff = 24 * time.Hour

// ShiftService シフトビジネスロジック
type ShiftService interface {
	// Create 講師自身によるシフト作成
	Create(ctx context.Context, instructorID string, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error)
	// AdminCreate 管理者による任意講師へのシフト作成（重複判定は講師作成と同一）
	AdminCreate(ctx context.Context, req *dto.AdminCreateShiftRequest) (*dto.ShiftResponse, error)
	// Delete 講師は自分のシフトかつ開始24時間前まで。管理者は無条件
	Delete(ctx context.Context, actorID, role, shiftID string) error
	// ListMine 講師自身のシフト（予約・カルテつき、1か月前から）
	ListMine(ctx context.Context, instructorID string) ([]dto.ShiftResponse, error)
	// ListAvailable 生徒向けの予約可能シフト。満席の個別枠は除外する
	ListAvailable(ctx context.Context, instructorID string) ([]dto.ShiftResponse, error)
	// MasterSchedule 全講師のシフト（1か月前から）
	MasterSchedule(ctx context.Context) ([]dto.ShiftResponse, error)
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewShiftService ShiftService を生成する
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger, now: time.Now}
}

// buildShift リクエストの JST 壁時計を絶対時刻に正規化してモデルを組み立てる
func buildShift(instructorID string, req *dto.CreateShiftRequest) (*model.Shift, error) {
	shiftType := req.Type
	if shiftType == "" {
		shiftType = model.ShiftTypeIndividual
	}
	location := req.Location
	if location == "" {
		location = model.LocationOnline
	}

	start, err := timeutil.ParseJST(req.Date, req.StartTime)
	if err != nil {
		return nil, err
	}

	var end time.Time
	if req.EndTime != "" {
		end, err = timeutil.ParseJST(req.Date, req.EndTime)
		if err != nil {
			return nil, err
		}
	} else {
		end = start.Add(timeutil.DefaultLessonDuration(shiftType))
	}

	return &model.Shift{
		InstructorID: instructorID,
		StartTime:    start,
		EndTime:      end,
		Type:         shiftType,
		Location:     location,
		IsPublished:  true,
		ClassName:    req.ClassName,
	}, nil
}

func (s *shiftService) Create(ctx context.Context, instructorID string, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	shift, err := buildShift(instructorID, req)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, shift)
}

func (s *shiftService) AdminCreate(ctx context.Context, req *dto.AdminCreateShiftRequest) (*dto.ShiftResponse, error) {
	instructor, err := s.repo.User.GetByID(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("講師の検索に失敗", zap.Error(err))
		return nil, err
	}
	if instructor.Role != model.RoleInstructor {
		return nil, ErrNotInstructor
	}

	shift, err := buildShift(req.InstructorID, &req.CreateShiftRequest)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, shift)
}

func (s *shiftService) create(ctx context.Context, shift *model.Shift) (*dto.ShiftResponse, error) {
	// 事前チェック。確定判定は CreateChecked がロック下で再検証する
	overlap, err := s.repo.Shift.HasOverlap(ctx, shift.InstructorID, shift.StartTime, shift.EndTime)
	if err != nil {
		s.logger.Error("シフト重複チェックに失敗", zap.Error(err))
		return nil, err
	}
	if overlap {
		return nil, ErrShiftOverlap
	}

	if err := s.repo.Shift.CreateChecked(ctx, shift); err != nil {
		if errors.Is(err, repository.ErrShiftOverlap) {
			return nil, ErrShiftOverlap
		}
		s.logger.Error("シフト作成に失敗", zap.Error(err))
		return nil, err
	}

	s.logger.Info("シフト作成完了",
		zap.String("shift_id", shift.ID),
		zap.String("instructor_id", shift.InstructorID),
		zap.Time("start", shift.StartTime),
	)

	resp := dto.NewShiftResponse(shift)
	return &resp, nil
}

func (s *shiftService) Delete(ctx context.Context, actorID, role, shiftID string) error {
	shift, err := s.repo.Shift.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		s.logger.Error("シフト検索に失敗", zap.Error(err))
		return err
	}

	if role != model.RoleAdmin {
		if shift.InstructorID != actorID {
			return ErrShiftForbidden
		}
		if s.now().After(shift.StartTime.Add(-lessonCutoff)) {
			return ErrShiftDeleteTooLate
		}
	}

	if err := s.repo.Shift.DeleteWithBookings(ctx, shiftID); err != nil {
		s.logger.Error("シフト削除に失敗", zap.Error(err))
		return err
	}

	s.logger.Info("シフト削除完了",
		zap.String("shift_id", shiftID),
		zap.String("actor_id", actorID),
	)
	return nil
}

func (s *shiftService) ListMine(ctx context.Context, instructorID string) ([]dto.ShiftResponse, error) {
	from := s.now().AddDate(0, -1, 0)
	shifts, err := s.repo.Shift.ListByInstructor(ctx, instructorID, from)
	if err != nil {
		s.logger.Error("シフト一覧の取得に失敗", zap.Error(err))
		return nil, err
	}
	return dto.NewShiftResponses(shifts), nil
}

func (s *shiftService) ListAvailable(ctx context.Context, instructorID string) ([]dto.ShiftResponse, error) {
	shifts, err := s.repo.Shift.ListPublishedByInstructor(ctx, instructorID, s.now())
	if err != nil {
		s.logger.Error("シフト一覧の取得に失敗", zap.Error(err))
		return nil, err
	}

	// 個別枠は1件でも確定予約があれば満席
	available := make([]model.Shift, 0, len(shifts))
	for i := range shifts {
		if shifts[i].Type == model.ShiftTypeIndividual && len(shifts[i].Bookings) > 0 {
			continue
		}
		available = append(available, shifts[i])
	}
	return dto.NewShiftResponses(available), nil
}

func (s *shiftService) MasterSchedule(ctx context.Context) ([]dto.ShiftResponse, error) {
	from := s.now().AddDate(0, -1, 0)
	shifts, err := s.repo.Shift.ListAllFrom(ctx, from)
	if err != nil {
		s.logger.Error("全体スケジュールの取得に失敗", zap.Error(err))
		return nil, err
	}
	return dto.NewShiftResponses(shifts), nil
}
