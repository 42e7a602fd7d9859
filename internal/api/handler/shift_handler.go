package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/service"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/response"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/timeutil"
)

// ShiftHandler シフトモジュール HTTP ハンドラー
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler ShiftHandler を生成する
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// Create 講師が自分のシフトを登録する
// POST /api/v1/shifts
func (h *ShiftHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	shift, err := h.shiftSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleShiftError(c, err)
		return
	}

	response.Created(c, shift)
}

// AdminCreate 管理者が任意の講師のシフトを登録する
// POST /api/v1/admin/shifts
func (h *ShiftHandler) AdminCreate(c *gin.Context) {
	var req dto.AdminCreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	shift, err := h.shiftSvc.AdminCreate(c.Request.Context(), &req)
	if err != nil {
		handleShiftError(c, err)
		return
	}

	response.Created(c, shift)
}

// Delete シフト削除（予約も巻き込んで削除する）
// DELETE /api/v1/shifts/:id
func (h *ShiftHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.shiftSvc.Delete(c.Request.Context(), userID, role, c.Param("id")); err != nil {
		handleShiftError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListMine 自分のシフト一覧（講師用）
// GET /api/v1/shifts/mine
func (h *ShiftHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	shifts, err := h.shiftSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, shifts)
}

// ListAvailable 指定講師の予約可能なシフト一覧（生徒用）
// GET /api/v1/instructors/:id/shifts
func (h *ShiftHandler) ListAvailable(c *gin.Context) {
	shifts, err := h.shiftSvc.ListAvailable(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleShiftError(c, err)
		return
	}

	response.OK(c, shifts)
}

// MasterSchedule 全体スケジュール（管理者用）
// GET /api/v1/admin/schedule
func (h *ShiftHandler) MasterSchedule(c *gin.Context) {
	shifts, err := h.shiftSvc.MasterSchedule(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, shifts)
}

func handleShiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 13001, err.Error())
	case errors.Is(err, service.ErrShiftOverlap):
		response.Conflict(c, 13002, err.Error())
	case errors.Is(err, service.ErrShiftForbidden):
		response.Forbidden(c, 13003, err.Error())
	case errors.Is(err, service.ErrShiftDeleteTooLate):
		response.Conflict(c, 13004, err.Error())
	case errors.Is(err, service.ErrNotInstructor):
		response.BadRequest(c, 13005, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, timeutil.ErrInvalidDateTime):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
