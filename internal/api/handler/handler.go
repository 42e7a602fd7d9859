package handler

import "github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/service"

// Handler 全 Handler の集約
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Shift     *ShiftHandler
	Booking   *BookingHandler
	Request   *ScheduleRequestHandler
	Report    *ReportHandler
	Admission *AdmissionHandler
	Archive   *ArchiveHandler
	Setting   *SettingHandler
	Export    *ExportHandler
}

// NewHandler Handler 集約を生成する
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		User:      NewUserHandler(svc.User),
		Shift:     NewShiftHandler(svc.Shift),
		Booking:   NewBookingHandler(svc.Booking),
		Request:   NewScheduleRequestHandler(svc.Request),
		Report:    NewReportHandler(svc.Report),
		Admission: NewAdmissionHandler(svc.Admission),
		Archive:   NewArchiveHandler(svc.Archive),
		Setting:   NewSettingHandler(svc.Setting),
		Export:    NewExportHandler(svc.Export),
	}
}
