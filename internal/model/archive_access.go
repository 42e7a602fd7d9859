package model

import "time"

// ArchiveAccess アーカイブ閲覧権限表 — archive_accesses
// 講師ごと・生徒ごとに1件（複合一意）。付与済みペアへの再付与は冪等。
type ArchiveAccess struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                    json:"id"`
	InstructorID string    `gorm:"type:uuid;not null;uniqueIndex:idx_archive_accesses_instructor_student" json:"instructor_id"`
	StudentID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_archive_accesses_instructor_student" json:"student_id"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                                json:"created_at"`

	// 関連
	Instructor *User `gorm:"foreignKey:InstructorID;references:ID" json:"instructor,omitempty"`
	Student    *User `gorm:"foreignKey:StudentID;references:ID"    json:"student,omitempty"`
}

// TableName 指定テーブル名
func (ArchiveAccess) TableName() string { return "archive_accesses" }
