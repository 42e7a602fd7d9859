package model

import "time"

// 日程リクエストステータス
const (
	RequestStatusPending  = "PENDING"
	RequestStatusApproved = "APPROVED"
	RequestStatusRejected = "REJECTED"
)

// ScheduleRequest 生徒からの日程リクエスト表 — schedule_requests
// 承認されると個別・オンラインのシフトと確定予約に昇格する。
type ScheduleRequest struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID    string    `gorm:"type:uuid;not null;index"                       json:"student_id"`
	InstructorID string    `gorm:"type:uuid;not null"                             json:"instructor_id"`
	StartTime    time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime      time.Time `gorm:"not null"                                       json:"end_time"`
	Status       string    `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"` // PENDING | APPROVED | REJECTED
	BaseModel

	// 関連
	Student    *User `gorm:"foreignKey:StudentID;references:ID"    json:"student,omitempty"`
	Instructor *User `gorm:"foreignKey:InstructorID;references:ID" json:"instructor,omitempty"`
}

// TableName 指定テーブル名
func (ScheduleRequest) TableName() string { return "schedule_requests" }
