package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/service"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/response"
)

// AdmissionHandler 合否結果モジュール HTTP ハンドラー
type AdmissionHandler struct {
	admissionSvc service.AdmissionService
}

// NewAdmissionHandler AdmissionHandler を生成する
func NewAdmissionHandler(admissionSvc service.AdmissionService) *AdmissionHandler {
	return &AdmissionHandler{admissionSvc: admissionSvc}
}

// List 生徒の合否結果一覧（講師・管理者）
// GET /api/v1/students/:id/admission-results
func (h *AdmissionHandler) List(c *gin.Context) {
	results, err := h.admissionSvc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleAdmissionError(c, err)
		return
	}

	response.OK(c, results)
}

// Replace 生徒の合否結果を一括置き換えする（講師・管理者）
// PUT /api/v1/students/:id/admission-results
func (h *AdmissionHandler) Replace(c *gin.Context) {
	var req dto.ReplaceAdmissionResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	results, err := h.admissionSvc.Replace(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleAdmissionError(c, err)
		return
	}

	response.OK(c, results)
}

func handleAdmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, err.Error())
	default:
		response.InternalError(c)
	}
}
