package service

import (
	"go.uber.org/zap"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/config"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/repository"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/jwt"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/mailer"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/redis"
)

// Service 全 Service の集約
type Service struct {
	Auth      AuthService
	User      UserService
	Shift     ShiftService
	Booking   BookingService
	Request   ScheduleRequestService
	Report    ReportService
	Admission AdmissionService
	Archive   ArchiveService
	Setting   SettingService
	Export    ExportService
}

// NewService Service 集約を生成する
// rdb は nil 可（Redis なしではトークン失効が効かないだけで動作は継続する）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mail mailer.Mailer,
	logger *zap.Logger,
) *Service {
	notifier := NewNotifier(mail, logger)
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:      NewUserService(repo, logger),
		Shift:     NewShiftService(repo, logger),
		Booking:   NewBookingService(repo, notifier, logger),
		Request:   NewScheduleRequestService(repo, notifier, logger),
		Report:    NewReportService(repo, logger),
		Admission: NewAdmissionService(repo, logger),
		Archive:   NewArchiveService(repo, logger),
		Setting:   NewSettingService(repo, logger),
		Export:    NewExportService(repo, logger),
	}
}
