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
	ErrRequestNotFound   = errors.New("日程リクエストが見つかりません")
	ErrRequestNotPending = errors.New("このリクエストは既に処理済みです")
	ErrRequestForbidden  = errors.New("このリクエストを操作する権限がありません")
)

// ScheduleRequestService 日程リクエストビジネスロジック
type ScheduleRequestService interface {
	// Create 生徒による希望日時のリクエスト。終了省略時は開始から1時間
	Create(ctx context.Context, studentID string, req *dto.CreateScheduleRequestRequest) (*dto.ScheduleRequestResponse, error)
	// Approve 宛先講師のみ。シフト（個別・オンライン）と確定予約への昇格を1トランザクションで行う
	Approve(ctx context.Context, instructorID, requestID string) (*dto.ScheduleRequestResponse, error)
	// Reject 宛先講師のみ
	Reject(ctx context.Context, instructorID, requestID string) error
	ListPending(ctx context.Context, instructorID string) ([]dto.ScheduleRequestResponse, error)
	ListMine(ctx context.Context, studentID string) ([]dto.ScheduleRequestResponse, error)
}

type scheduleRequestService struct {
	repo     *repository.Repository
	notifier *Notifier
	logger   *zap.Logger
}

// NewScheduleRequestService ScheduleRequestService を生成する
func NewScheduleRequestService(repo *repository.Repository, notifier *Notifier, logger *zap.Logger) ScheduleRequestService {
	return &scheduleRequestService{repo: repo, notifier: notifier, logger: logger}
}

func (s *scheduleRequestService) Create(ctx context.Context, studentID string, req *dto.CreateScheduleRequestRequest) (*dto.ScheduleRequestResponse, error) {
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
		end = start.Add(time.Hour)
	}

	request := &model.ScheduleRequest{
		StudentID:    studentID,
		InstructorID: req.InstructorID,
		StartTime:    start,
		EndTime:      end,
		Status:       model.RequestStatusPending,
	}
	if err := s.repo.ScheduleRequest.Create(ctx, request); err != nil {
		s.logger.Error("日程リクエスト作成に失敗", zap.Error(err))
		return nil, err
	}

	s.logger.Info("日程リクエスト作成完了",
		zap.String("request_id", request.ID),
		zap.String("student_id", studentID),
		zap.String("instructor_id", req.InstructorID),
	)

	if student, err := s.repo.User.GetByID(ctx, studentID); err == nil {
		s.notifier.RequestCreated(student, instructor, request)
	} else {
		s.logger.Warn("通知用の生徒取得に失敗", zap.Error(err))
	}

	resp := dto.NewScheduleRequestResponse(request)
	return &resp, nil
}

func (s *scheduleRequestService) Approve(ctx context.Context, instructorID, requestID string) (*dto.ScheduleRequestResponse, error) {
	request, err := s.getPendingForInstructor(ctx, instructorID, requestID)
	if err != nil {
		return nil, err
	}

	// 承認は重複チェックなしで昇格する（講師の明示判断を優先）
	shift := &model.Shift{
		InstructorID: request.InstructorID,
		StartTime:    request.StartTime,
		EndTime:      request.EndTime,
		Type:         model.ShiftTypeIndividual,
		Location:     model.LocationOnline,
		IsPublished:  true,
	}
	booking := &model.Booking{
		StudentID:   request.StudentID,
		Status:      model.BookingStatusConfirmed,
		MeetingType: model.MeetingTypeOnline,
	}

	if err := s.repo.ScheduleRequest.Approve(ctx, request, shift, booking); err != nil {
		s.logger.Error("リクエスト承認に失敗", zap.Error(err))
		return nil, err
	}

	request.Status = model.RequestStatusApproved
	s.logger.Info("日程リクエスト承認完了",
		zap.String("request_id", request.ID),
		zap.String("shift_id", shift.ID),
		zap.String("booking_id", booking.ID),
	)

	if request.Student != nil && request.Instructor != nil {
		s.notifier.RequestApproved(request.Student, request.Instructor, request)
	}

	resp := dto.NewScheduleRequestResponse(request)
	return &resp, nil
}

func (s *scheduleRequestService) Reject(ctx context.Context, instructorID, requestID string) error {
	request, err := s.getPendingForInstructor(ctx, instructorID, requestID)
	if err != nil {
		return err
	}

	if err := s.repo.ScheduleRequest.UpdateStatus(ctx, requestID, model.RequestStatusRejected); err != nil {
		s.logger.Error("リクエスト却下に失敗", zap.Error(err))
		return err
	}

	s.logger.Info("日程リクエスト却下完了", zap.String("request_id", requestID))

	if request.Student != nil {
		s.notifier.RequestRejected(request.Student, request)
	}
	return nil
}

func (s *scheduleRequestService) ListPending(ctx context.Context, instructorID string) ([]dto.ScheduleRequestResponse, error) {
	requests, err := s.repo.ScheduleRequest.ListPendingByInstructor(ctx, instructorID)
	if err != nil {
		s.logger.Error("リクエスト一覧の取得に失敗", zap.Error(err))
		return nil, err
	}
	return dto.NewScheduleRequestResponses(requests), nil
}

func (s *scheduleRequestService) ListMine(ctx context.Context, studentID string) ([]dto.ScheduleRequestResponse, error) {
	requests, err := s.repo.ScheduleRequest.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("リクエスト一覧の取得に失敗", zap.Error(err))
		return nil, err
	}
	return dto.NewScheduleRequestResponses(requests), nil
}

// getPendingForInstructor 宛先講師チェックと未処理チェックをまとめて行う
func (s *scheduleRequestService) getPendingForInstructor(ctx context.Context, instructorID, requestID string) (*model.ScheduleRequest, error) {
	request, err := s.repo.ScheduleRequest.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("リクエスト検索に失敗", zap.Error(err))
		return nil, err
	}
	if request.InstructorID != instructorID {
		return nil, ErrRequestForbidden
	}
	// 処理済みリクエストは不変
	if request.Status != model.RequestStatusPending {
		return nil, ErrRequestNotPending
	}
	return request, nil
}
