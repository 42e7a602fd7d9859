package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/service"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/response"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/timeutil"
)

// ScheduleRequestHandler 日程リクエストモジュール HTTP ハンドラー
type ScheduleRequestHandler struct {
	requestSvc service.ScheduleRequestService
}

// NewScheduleRequestHandler ScheduleRequestHandler を生成する
func NewScheduleRequestHandler(requestSvc service.ScheduleRequestService) *ScheduleRequestHandler {
	return &ScheduleRequestHandler{requestSvc: requestSvc}
}

// Create 生徒が希望日時をリクエストする
// POST /api/v1/schedule-requests
func (h *ScheduleRequestHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	result, err := h.requestSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// Approve 講師がリクエストを承認しシフト＋予約に昇格させる
// POST /api/v1/schedule-requests/:id/approve
func (h *ScheduleRequestHandler) Approve(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.Approve(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// Reject 講師がリクエストを却下する
// POST /api/v1/schedule-requests/:id/reject
func (h *ScheduleRequestHandler) Reject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.requestSvc.Reject(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleRequestError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListPending 自分宛の未処理リクエスト一覧（講師用）
// GET /api/v1/schedule-requests/pending
func (h *ScheduleRequestHandler) ListPending(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestSvc.ListPending(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, requests)
}

// ListMine 自分が出したリクエスト一覧（生徒用）
// GET /api/v1/schedule-requests/mine
func (h *ScheduleRequestHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, requests)
}

func handleRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, 15001, err.Error())
	case errors.Is(err, service.ErrRequestNotPending):
		response.Conflict(c, 15002, err.Error())
	case errors.Is(err, service.ErrRequestForbidden):
		response.Forbidden(c, 15003, err.Error())
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
