package model

import "time"

// ユーザー役割
const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

// User ユーザー表 — users
// ログイン・予約の可否は IsActive かつ ArchivedAt == nil で判定する。
type User struct {
	ID           string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string     `gorm:"type:varchar(20);not null"                      json:"role"` // STUDENT | INSTRUCTOR | ADMIN
	Bio          *string    `gorm:"type:text"                                      json:"bio,omitempty"`
	ImageURL     *string    `gorm:"type:text"                                      json:"image_url,omitempty"`
	IsActive     bool       `gorm:"not null;default:true"                          json:"is_active"`
	ArchivedAt   *time.Time `json:"archived_at,omitempty"`
	ArchiveYear  *int       `json:"archive_year,omitempty"`
	BaseModel
}

// TableName 指定テーブル名
func (User) TableName() string { return "users" }

// IsArchived アーカイブ済みかどうか
func (u *User) IsArchived() bool { return u.ArchivedAt != nil }

// CanLogin ログイン可能かどうか（無効化・アーカイブ済みは不可）
func (u *User) CanLogin() bool { return u.IsActive && u.ArchivedAt == nil }
