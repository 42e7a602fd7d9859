package dto

import (
	"time"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// ── 予約モジュール DTO ──

// CreateBookingRequest 生徒による予約リクエスト
type CreateBookingRequest struct {
	ShiftID     string `json:"shift_id"     binding:"required,uuid"`
	MeetingType string `json:"meeting_type" binding:"omitempty,oneof=ONLINE IN_PERSON"`
}

// ForceBookingRequest 講師・管理者による代理予約リクエスト（24時間制限なし）
type ForceBookingRequest struct {
	ShiftID     string `json:"shift_id"     binding:"required,uuid"`
	StudentID   string `json:"student_id"   binding:"required,uuid"`
	MeetingType string `json:"meeting_type" binding:"omitempty,oneof=ONLINE IN_PERSON"`
}

// BookingResponse 予約応答
type BookingResponse struct {
	ID          string          `json:"id"`
	ShiftID     string          `json:"shift_id"`
	StudentID   string          `json:"student_id"`
	Status      string          `json:"status"`
	MeetingType string          `json:"meeting_type"`
	CreatedAt   time.Time       `json:"created_at"`
	Shift       *ShiftResponse  `json:"shift,omitempty"`
	Student     *UserResponse   `json:"student,omitempty"`
	Report      *ReportResponse `json:"report,omitempty"`
}

// NewBookingResponse model.Booking から応答 DTO へ変換する
func NewBookingResponse(b *model.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		ShiftID:     b.ShiftID,
		StudentID:   b.StudentID,
		Status:      b.Status,
		MeetingType: b.MeetingType,
		CreatedAt:   b.CreatedAt,
	}
	if b.Shift != nil {
		s := NewShiftResponse(b.Shift)
		resp.Shift = &s
	}
	if b.Student != nil {
		u := NewUserResponse(b.Student)
		resp.Student = &u
	}
	if b.Report != nil {
		r := NewReportResponse(b.Report)
		resp.Report = &r
	}
	return resp
}

// NewBookingResponses 予約一覧の変換
func NewBookingResponses(bookings []model.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, NewBookingResponse(&bookings[i]))
	}
	return out
}
