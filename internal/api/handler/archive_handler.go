package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/service"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/response"
)

// ArchiveHandler アーカイブモジュール HTTP ハンドラー
type ArchiveHandler struct {
	archiveSvc service.ArchiveService
}

// NewArchiveHandler ArchiveHandler を生成する
func NewArchiveHandler(archiveSvc service.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{archiveSvc: archiveSvc}
}

// Archive ユーザーをアーカイブする（管理者用）
// POST /api/v1/admin/users/:id/archive
func (h *ArchiveHandler) Archive(c *gin.Context) {
	adminID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ArchiveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	if err := h.archiveSvc.Archive(c.Request.Context(), adminID, c.Param("id"), &req); err != nil {
		handleArchiveError(c, err)
		return
	}

	response.OK(c, nil)
}

// Unarchive アーカイブを解除する（管理者用）
// DELETE /api/v1/admin/users/:id/archive
func (h *ArchiveHandler) Unarchive(c *gin.Context) {
	if err := h.archiveSvc.Unarchive(c.Request.Context(), c.Param("id")); err != nil {
		handleArchiveError(c, err)
		return
	}

	response.OK(c, nil)
}

// Grant 講師にアーカイブ生徒の閲覧権限を付与する（管理者用）
// POST /api/v1/admin/archive-accesses
func (h *ArchiveHandler) Grant(c *gin.Context) {
	var req dto.GrantArchiveAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	if err := h.archiveSvc.Grant(c.Request.Context(), &req); err != nil {
		handleArchiveError(c, err)
		return
	}

	response.Created(c, nil)
}

// ListAccesses 閲覧権限の一覧を返す（管理者用）
// GET /api/v1/admin/archive-accesses?student_id=xxx
func (h *ArchiveHandler) ListAccesses(c *gin.Context) {
	accesses, err := h.archiveSvc.ListAccesses(c.Request.Context(), c.Query("student_id"))
	if err != nil {
		handleArchiveError(c, err)
		return
	}

	response.OK(c, accesses)
}

// Revoke 閲覧権限を剥奪する（管理者用）
// DELETE /api/v1/admin/archive-accesses
func (h *ArchiveHandler) Revoke(c *gin.Context) {
	instructorID := c.Query("instructor_id")
	studentID := c.Query("student_id")
	if instructorID == "" || studentID == "" {
		response.BadRequest(c, 10001, "instructor_id と student_id は必須です")
		return
	}

	if err := h.archiveSvc.Revoke(c.Request.Context(), instructorID, studentID); err != nil {
		handleArchiveError(c, err)
		return
	}

	response.OK(c, nil)
}

// Search アーカイブ済みユーザーを検索する（管理者用）
// GET /api/v1/admin/archive/users
func (h *ArchiveHandler) Search(c *gin.Context) {
	var query dto.ArchivedUserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "検索条件が不正です")
		return
	}

	users, err := h.archiveSvc.Search(c.Request.Context(), &query)
	if err != nil {
		handleArchiveError(c, err)
		return
	}

	response.OK(c, users)
}

// ListLicensed 閲覧権限を持つアーカイブ生徒一覧（講師用）
// GET /api/v1/archive/students
func (h *ArchiveHandler) ListLicensed(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	students, err := h.archiveSvc.ListLicensed(c.Request.Context(), userID)
	if err != nil {
		handleArchiveError(c, err)
		return
	}

	response.OK(c, students)
}

func handleArchiveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSelfArchive):
		response.BadRequest(c, 18001, err.Error())
	case errors.Is(err, service.ErrArchiveForbidden):
		response.Forbidden(c, 18002, err.Error())
	case errors.Is(err, service.ErrNotInstructor):
		response.BadRequest(c, 13005, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, err.Error())
	default:
		response.InternalError(c)
	}
}
