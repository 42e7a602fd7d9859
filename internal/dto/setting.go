package dto

import (
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// ── グローバル設定モジュール DTO ──

// UpsertSettingRequest 設定の作成・更新リクエスト
type UpsertSettingRequest struct {
	Key         string  `json:"key"         binding:"required,max=100"`
	Value       string  `json:"value"       binding:"required,max=255"`
	Description *string `json:"description"`
}

// SettingResponse 設定応答
type SettingResponse struct {
	Key         string  `json:"key"`
	Value       string  `json:"value"`
	Description *string `json:"description,omitempty"`
}

// NewSettingResponse model.GlobalSetting から応答 DTO へ変換する
func NewSettingResponse(s *model.GlobalSetting) SettingResponse {
	return SettingResponse{Key: s.Key, Value: s.Value, Description: s.Description}
}
