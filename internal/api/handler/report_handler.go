package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/service"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/response"
)

// ReportHandler カルテモジュール HTTP ハンドラー
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler ReportHandler を生成する
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Submit 授業後のカルテを提出する（講師用）
// POST /api/v1/reports
func (h *ReportHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	report, err := h.reportSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.Created(c, report)
}

// GetByBooking 予約に紐づくカルテを取得する
// GET /api/v1/bookings/:id/report
func (h *ReportHandler) GetByBooking(c *gin.Context) {
	report, err := h.reportSvc.GetByBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.OK(c, report)
}

func handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReportNotFound):
		response.NotFound(c, 16001, err.Error())
	case errors.Is(err, service.ErrReportTooEarly):
		response.Conflict(c, 16002, err.Error())
	case errors.Is(err, service.ErrReportExpired):
		response.Conflict(c, 16003, err.Error())
	case errors.Is(err, service.ErrReportExists):
		response.Conflict(c, 16004, err.Error())
	case errors.Is(err, service.ErrReportForbidden):
		response.Forbidden(c, 16005, err.Error())
	case errors.Is(err, service.ErrBookingNotFound):
		response.NotFound(c, 14001, err.Error())
	default:
		response.InternalError(c)
	}
}
