package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/service"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/response"
)

// AuthHandler 認証モジュール HTTP ハンドラー
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler AuthHandler を生成する
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 新規登録
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			response.Conflict(c, 11003, err.Error())
		case errors.Is(err, service.ErrAdminEmailRestricted):
			response.Forbidden(c, 11004, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, user)
}

// Login ログイン
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	tokens, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, 11001, err.Error())
		case errors.Is(err, service.ErrAccountDisabled):
			response.Forbidden(c, 11002, err.Error())
		case errors.Is(err, service.ErrAdminEmailRestricted):
			response.Forbidden(c, 11004, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, tokens)
}

// Logout ログアウト
// POST /api/v1/auth/logout
// アクセストークンをブラックリストに登録して失効させる
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// RefreshToken トークン更新
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	tokens, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountDisabled):
			response.Forbidden(c, 11002, err.Error())
		default:
			response.Unauthorized(c, 10002, "トークンが無効または期限切れです")
		}
		return
	}

	response.OK(c, tokens)
}

// Me 自分のプロフィール取得
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}
