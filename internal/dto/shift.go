package dto

import (
	"time"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// ── シフトモジュール DTO ──

// CreateShiftRequest シフト作成リクエスト
// 日付・時刻は JST の壁時計で受け取る。end_time 省略時は種別既定の授業時間を適用。
type CreateShiftRequest struct {
	Date      string  `json:"date"       binding:"required"` // "2006-01-02"
	StartTime string  `json:"start_time" binding:"required"` // "15:04"
	EndTime   string  `json:"end_time"`                      // "15:04"（省略可）
	Type      string  `json:"type"       binding:"omitempty,oneof=INDIVIDUAL GROUP BEGINNER TRIAL SPECIAL"`
	Location  string  `json:"location"   binding:"omitempty,oneof=ONLINE KICHIJOJI TACHIKAWA"`
	ClassName *string `json:"class_name" binding:"omitempty,max=100"`
}

// AdminCreateShiftRequest 管理者によるシフト作成（対象講師を指定）
type AdminCreateShiftRequest struct {
	CreateShiftRequest
	InstructorID string `json:"instructor_id" binding:"required,uuid"`
}

// ShiftResponse シフト応答
type ShiftResponse struct {
	ID           string            `json:"id"`
	InstructorID string            `json:"instructor_id"`
	Instructor   *UserResponse     `json:"instructor,omitempty"`
	StartTime    time.Time         `json:"start_time"`
	EndTime      time.Time         `json:"end_time"`
	Type         string            `json:"type"`
	Location     string            `json:"location"`
	IsPublished  bool              `json:"is_published"`
	ClassName    *string           `json:"class_name,omitempty"`
	Bookings     []BookingResponse `json:"bookings,omitempty"`
}

// NewShiftResponse model.Shift から応答 DTO へ変換する
func NewShiftResponse(s *model.Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:           s.ID,
		InstructorID: s.InstructorID,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Type:         s.Type,
		Location:     s.Location,
		IsPublished:  s.IsPublished,
		ClassName:    s.ClassName,
	}
	if s.Instructor != nil {
		u := NewUserResponse(s.Instructor)
		resp.Instructor = &u
	}
	for i := range s.Bookings {
		resp.Bookings = append(resp.Bookings, NewBookingResponse(&s.Bookings[i]))
	}
	return resp
}

// NewShiftResponses シフト一覧の変換
func NewShiftResponses(shifts []model.Shift) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(shifts))
	for i := range shifts {
		out = append(out, NewShiftResponse(&shifts[i]))
	}
	return out
}
