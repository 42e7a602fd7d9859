package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/service"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/response"
)

// UserHandler ユーザーモジュール HTTP ハンドラー
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler UserHandler を生成する
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListInstructors 在籍講師一覧
// GET /api/v1/instructors
func (h *UserHandler) ListInstructors(c *gin.Context) {
	instructors, err := h.userSvc.ListInstructors(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, instructors)
}

// GetByID ユーザー取得
// GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
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

// AdminList 全ユーザー一覧（講師は実績統計付き）
// GET /api/v1/admin/users
func (h *UserHandler) AdminList(c *gin.Context) {
	users, err := h.userSvc.AdminList(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, users)
}
