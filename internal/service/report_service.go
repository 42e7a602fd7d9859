package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/repository"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/timeutil"
)

var (
	ErrReportNotFound  = errors.New("カルテが見つかりません")
	ErrReportTooEarly  = errors.New("授業開始前です。まだカルテは記入できません。")
	ErrReportExpired   = errors.New("提出期限切れです（当日23:59まで）。管理者に連絡してください。")
	ErrReportExists    = errors.New("このカルテは既に提出されています")
	ErrReportForbidden = errors.New("このカルテを操作する権限がありません")
)

// ReportService 授業カルテビジネスロジック
// 提出可能期間は [授業開始, 当日23:59:59.999 + 延長時間]。
// 延長時間はグローバル設定 CARTE_DEADLINE_EXTENSION_HOURS から読む。
type ReportService interface {
	Submit(ctx context.Context, instructorID string, req *dto.SubmitReportRequest) (*dto.ReportResponse, error)
	GetByBooking(ctx context.Context, bookingID string) (*dto.ReportResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService ReportService を生成する
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger, now: time.Now}
}

func (s *reportService) Submit(ctx context.Context, instructorID string, req *dto.SubmitReportRequest) (*dto.ReportResponse, error) {
	booking, err := s.repo.Booking.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("予約検索に失敗", zap.Error(err))
		return nil, err
	}
	if booking.Shift == nil || booking.Shift.InstructorID != instructorID {
		return nil, ErrReportForbidden
	}

	now := s.now()
	start := booking.Shift.StartTime
	if now.Before(start) {
		return nil, ErrReportTooEarly
	}

	deadline := timeutil.EndOfDay(start).Add(time.Duration(s.extensionHours(ctx)) * time.Hour)
	if now.After(deadline) {
		return nil, ErrReportExpired
	}

	exists, err := s.repo.Report.ExistsByBookingID(ctx, req.BookingID)
	if err != nil {
		s.logger.Error("カルテ存在チェックに失敗", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrReportExists
	}

	report := &model.Report{
		BookingID: req.BookingID,
		Content:   req.Content,
		Homework:  req.Homework,
		Feedback:  req.Feedback,
		LogURL:    req.LogURL,
	}
	if err := s.repo.Report.Create(ctx, report); err != nil {
		s.logger.Error("カルテ作成に失敗", zap.Error(err))
		return nil, err
	}

	s.logger.Info("カルテ提出完了",
		zap.String("report_id", report.ID),
		zap.String("booking_id", req.BookingID),
	)

	resp := dto.NewReportResponse(report)
	return &resp, nil
}

func (s *reportService) GetByBooking(ctx context.Context, bookingID string) (*dto.ReportResponse, error) {
	report, err := s.repo.Report.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		s.logger.Error("カルテ検索に失敗", zap.Error(err))
		return nil, err
	}
	resp := dto.NewReportResponse(report)
	return &resp, nil
}

// extensionHours 設定値が無い・不正な場合は延長なしとして扱う
func (s *reportService) extensionHours(ctx context.Context) int {
	setting, err := s.repo.GlobalSetting.Get(ctx, model.SettingCarteDeadlineExtensionHours)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("延長設定の取得に失敗", zap.Error(err))
		}
		return 0
	}
	hours, err := strconv.Atoi(setting.Value)
	if err != nil || hours < 0 {
		s.logger.Warn("延長設定の値が不正",
			zap.String("key", model.SettingCarteDeadlineExtensionHours),
			zap.String("value", setting.Value),
		)
		return 0
	}
	return hours
}
