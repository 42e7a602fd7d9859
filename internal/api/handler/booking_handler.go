package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/service"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/response"
)

// BookingHandler 予約モジュール HTTP ハンドラー
type BookingHandler struct {
	bookingSvc service.BookingService
}

// NewBookingHandler BookingHandler を生成する
func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// Create 生徒がシフトを予約する（開始24時間前まで）
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	booking, err := h.bookingSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleBookingError(c, err)
		return
	}

	response.Created(c, booking)
}

// ForceCreate 講師・管理者による代理予約（締切チェックなし）
// POST /api/v1/bookings/force, POST /api/v1/admin/bookings
func (h *BookingHandler) ForceCreate(c *gin.Context) {
	var req dto.ForceBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	booking, err := h.bookingSvc.ForceCreate(c.Request.Context(), &req)
	if err != nil {
		handleBookingError(c, err)
		return
	}

	response.Created(c, booking)
}

// Cancel 生徒自身による予約キャンセル
// DELETE /api/v1/bookings/:id
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.bookingSvc.Cancel(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleBookingError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListMine 自分の予約一覧（生徒用）
// GET /api/v1/bookings/mine
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	bookings, err := h.bookingSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, bookings)
}

// History 担当した授業の履歴（講師用）
// GET /api/v1/bookings/history
func (h *BookingHandler) History(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	bookings, err := h.bookingSvc.History(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, bookings)
}

func handleBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		response.NotFound(c, 14001, err.Error())
	case errors.Is(err, service.ErrSlotTaken):
		response.Conflict(c, 14002, err.Error())
	case errors.Is(err, service.ErrStudentOverlap):
		response.Conflict(c, 14003, err.Error())
	case errors.Is(err, service.ErrBookingDeadline):
		response.Conflict(c, 14004, err.Error())
	case errors.Is(err, service.ErrBookingForbidden):
		response.Forbidden(c, 14005, err.Error())
	case errors.Is(err, service.ErrStudentNotBookable):
		response.BadRequest(c, 14006, err.Error())
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 13001, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, err.Error())
	default:
		response.InternalError(c)
	}
}
