package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/service"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/response"
)

// SettingHandler グローバル設定モジュール HTTP ハンドラー
type SettingHandler struct {
	settingSvc service.SettingService
}

// NewSettingHandler SettingHandler を生成する
func NewSettingHandler(settingSvc service.SettingService) *SettingHandler {
	return &SettingHandler{settingSvc: settingSvc}
}

// List 全設定一覧（管理者用）
// GET /api/v1/admin/settings
func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.settingSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, settings)
}

// Get 設定値の取得（管理者用）
// GET /api/v1/admin/settings/:key
func (h *SettingHandler) Get(c *gin.Context) {
	setting, err := h.settingSvc.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrSettingNotFound) {
			response.NotFound(c, 19001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, setting)
}

// Upsert 設定の作成・更新（管理者用）
// PUT /api/v1/admin/settings
func (h *SettingHandler) Upsert(c *gin.Context) {
	var req dto.UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	setting, err := h.settingSvc.Upsert(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, setting)
}
