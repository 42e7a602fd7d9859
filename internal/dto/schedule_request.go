package dto

import (
	"time"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// ── 日程リクエストモジュール DTO ──

// CreateScheduleRequestRequest 生徒からの日程リクエスト作成
// end_time 省略時は開始から1時間とする。
type CreateScheduleRequestRequest struct {
	InstructorID string `json:"instructor_id" binding:"required,uuid"`
	Date         string `json:"date"          binding:"required"` // "2006-01-02"（JST）
	StartTime    string `json:"start_time"    binding:"required"` // "15:04"
	EndTime      string `json:"end_time"`                         // "15:04"（省略可）
}

// ScheduleRequestResponse 日程リクエスト応答
type ScheduleRequestResponse struct {
	ID           string        `json:"id"`
	StudentID    string        `json:"student_id"`
	InstructorID string        `json:"instructor_id"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	Student      *UserResponse `json:"student,omitempty"`
	Instructor   *UserResponse `json:"instructor,omitempty"`
}

// NewScheduleRequestResponse model.ScheduleRequest から応答 DTO へ変換する
func NewScheduleRequestResponse(r *model.ScheduleRequest) ScheduleRequestResponse {
	resp := ScheduleRequestResponse{
		ID:           r.ID,
		StudentID:    r.StudentID,
		InstructorID: r.InstructorID,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
	}
	if r.Student != nil {
		u := NewUserResponse(r.Student)
		resp.Student = &u
	}
	if r.Instructor != nil {
		u := NewUserResponse(r.Instructor)
		resp.Instructor = &u
	}
	return resp
}

// NewScheduleRequestResponses 日程リクエスト一覧の変換
func NewScheduleRequestResponses(requests []model.ScheduleRequest) []ScheduleRequestResponse {
	out := make([]ScheduleRequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, NewScheduleRequestResponse(&requests[i]))
	}
	return out
}
