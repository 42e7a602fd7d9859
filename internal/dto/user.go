package dto

import (
	"time"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// ── ユーザーモジュール DTO ──

// UserResponse ユーザー情報応答（パスワードハッシュは含めない）
type UserResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Bio         *string    `json:"bio,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	IsActive    bool       `json:"is_active"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	ArchiveYear *int       `json:"archive_year,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewUserResponse model.User から応答 DTO へ変換する
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Bio:         u.Bio,
		ImageURL:    u.ImageURL,
		IsActive:    u.IsActive,
		ArchivedAt:  u.ArchivedAt,
		ArchiveYear: u.ArchiveYear,
		CreatedAt:   u.CreatedAt,
	}
}

// InstructorStats 講師の稼働統計（管理者用ユーザー一覧に付与）
type InstructorStats struct {
	ShiftsThisMonth  int64 `json:"shifts_this_month"`  // 今月公開済みシフト数
	LessonsThisMonth int64 `json:"lessons_this_month"` // 今月の実施授業数
	LessonsThisYear  int64 `json:"lessons_this_year"`  // 今年の実施授業数
	LessonsTotal     int64 `json:"lessons_total"`      // 累計実施授業数
}

// AdminUserResponse 管理者用ユーザー一覧の1行
type AdminUserResponse struct {
	UserResponse
	Stats *InstructorStats `json:"stats,omitempty"` // 講師のみ
}
