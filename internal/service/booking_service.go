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
)

var (
	ErrBookingNotFound    = errors.New("予約が見つかりません")
	ErrSlotTaken          = errors.New("既に予約が入っています")
	ErrStudentOverlap     = errors.New("この生徒は同時間帯に既に授業予約があります")
	ErrBookingDeadline    = errors.New("予約期限切れです（授業開始24時間前まで予約可能）")
	ErrBookingForbidden   = errors.New("この予約を操作する権限がありません")
	ErrStudentNotBookable = errors.New("この生徒は現在予約できません")
)

// BookingService 予約ビジネスロジック
type BookingService interface {
	// Create 生徒自身による予約。授業開始24時間前を過ぎると不可
	Create(ctx context.Context, studentID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	// ForceCreate 講師・管理者による代理予約。24時間制限は適用しない
	ForceCreate(ctx context.Context, req *dto.ForceBookingRequest) (*dto.BookingResponse, error)
	// Cancel 予約者本人のみ。時間制限なし・物理削除
	Cancel(ctx context.Context, studentID, bookingID string) error
	ListMine(ctx context.Context, studentID string) ([]dto.BookingResponse, error)
	// History 講師の担当授業履歴（過去分含む）
	History(ctx context.Context, instructorID string) ([]dto.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	notifier *Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService BookingService を生成する
func NewBookingService(repo *repository.Repository, notifier *Notifier, logger *zap.Logger) BookingService {
	return &bookingService{repo: repo, notifier: notifier, logger: logger, now: time.Now}
}

func (s *bookingService) Create(ctx context.Context, studentID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	shift, err := s.getShift(ctx, req.ShiftID)
	if err != nil {
		return nil, err
	}

	// 生徒本人の予約は開始24時間前まで
	if s.now().After(shift.StartTime.Add(-lessonCutoff)) {
		return nil, ErrBookingDeadline
	}

	return s.create(ctx, shift, studentID, req.MeetingType)
}

func (s *bookingService) ForceCreate(ctx context.Context, req *dto.ForceBookingRequest) (*dto.BookingResponse, error) {
	shift, err := s.getShift(ctx, req.ShiftID)
	if err != nil {
		return nil, err
	}

	student, err := s.repo.User.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("生徒の検索に失敗", zap.Error(err))
		return nil, err
	}
	if student.Role != model.RoleStudent || !student.CanLogin() {
		return nil, ErrStudentNotBookable
	}

	return s.create(ctx, shift, req.StudentID, req.MeetingType)
}

func (s *bookingService) create(ctx context.Context, shift *model.Shift, studentID, meetingType string) (*dto.BookingResponse, error) {
	if meetingType == "" {
		meetingType = model.MeetingTypeOnline
	}

	// 事前チェック。確定判定は CreateChecked がロック下で再検証する
	if shift.Type == model.ShiftTypeIndividual {
		taken, err := s.repo.Booking.HasConfirmedForShift(ctx, shift.ID)
		if err != nil {
			s.logger.Error("枠占有チェックに失敗", zap.Error(err))
			return nil, err
		}
		if taken {
			return nil, ErrSlotTaken
		}
	}
	overlap, err := s.repo.Booking.StudentHasOverlap(ctx, studentID, shift.StartTime, shift.EndTime)
	if err != nil {
		s.logger.Error("生徒重複チェックに失敗", zap.Error(err))
		return nil, err
	}
	if overlap {
		return nil, ErrStudentOverlap
	}

	booking := &model.Booking{
		ShiftID:     shift.ID,
		StudentID:   studentID,
		Status:      model.BookingStatusConfirmed,
		MeetingType: meetingType,
	}
	if err := s.repo.Booking.CreateChecked(ctx, booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotTaken):
			return nil, ErrSlotTaken
		case errors.Is(err, repository.ErrStudentOverlap):
			return nil, ErrStudentOverlap
		}
		s.logger.Error("予約作成に失敗", zap.Error(err))
		return nil, err
	}

	s.logger.Info("予約作成完了",
		zap.String("booking_id", booking.ID),
		zap.String("shift_id", shift.ID),
		zap.String("student_id", studentID),
	)

	// コミット後通知（ベストエフォート）
	s.notifyBooked(ctx, shift, studentID)

	resp := dto.NewBookingResponse(booking)
	return &resp, nil
}

func (s *bookingService) notifyBooked(ctx context.Context, shift *model.Shift, studentID string) {
	student, err := s.repo.User.GetByID(ctx, studentID)
	if err != nil {
		s.logger.Warn("通知用の生徒取得に失敗", zap.Error(err))
		return
	}
	instructor := shift.Instructor
	if instructor == nil {
		instructor, err = s.repo.User.GetByID(ctx, shift.InstructorID)
		if err != nil {
			s.logger.Warn("通知用の講師取得に失敗", zap.Error(err))
			return
		}
	}
	s.notifier.BookingCreated(student, instructor, shift)
}

func (s *bookingService) Cancel(ctx context.Context, studentID, bookingID string) error {
	booking, err := s.repo.Booking.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("予約検索に失敗", zap.Error(err))
		return err
	}

	if booking.StudentID != studentID {
		return ErrBookingForbidden
	}

	if err := s.repo.Booking.Delete(ctx, bookingID); err != nil {
		s.logger.Error("予約削除に失敗", zap.Error(err))
		return err
	}

	s.logger.Info("予約キャンセル完了",
		zap.String("booking_id", bookingID),
		zap.String("student_id", studentID),
	)

	if booking.Shift != nil && booking.Shift.Instructor != nil && booking.Student != nil {
		s.notifier.BookingCancelled(booking.Student, booking.Shift.Instructor, booking.Shift)
	}
	return nil
}

func (s *bookingService) ListMine(ctx context.Context, studentID string) ([]dto.BookingResponse, error) {
	bookings, err := s.repo.Booking.ListConfirmedByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("予約一覧の取得に失敗", zap.Error(err))
		return nil, err
	}
	return dto.NewBookingResponses(bookings), nil
}

func (s *bookingService) History(ctx context.Context, instructorID string) ([]dto.BookingResponse, error) {
	bookings, err := s.repo.Booking.ListByInstructor(ctx, instructorID)
	if err != nil {
		s.logger.Error("授業履歴の取得に失敗", zap.Error(err))
		return nil, err
	}
	return dto.NewBookingResponses(bookings), nil
}

func (s *bookingService) getShift(ctx context.Context, shiftID string) (*model.Shift, error) {
	shift, err := s.repo.Shift.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("シフト検索に失敗", zap.Error(err))
		return nil, err
	}
	return shift, nil
}
