package dto

import (
	"time"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// ── カルテモジュール DTO ──

// SubmitReportRequest カルテ提出リクエスト
type SubmitReportRequest struct {
	BookingID string  `json:"booking_id" binding:"required,uuid"`
	Content   string  `json:"content"    binding:"required"`
	Homework  *string `json:"homework"`
	Feedback  *string `json:"feedback"`
	LogURL    *string `json:"log_url"    binding:"omitempty,url"`
}

// ReportResponse カルテ応答
type ReportResponse struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	Content   string    `json:"content"`
	Homework  *string   `json:"homework,omitempty"`
	Feedback  *string   `json:"feedback,omitempty"`
	LogURL    *string   `json:"log_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReportResponse model.Report から応答 DTO へ変換する
func NewReportResponse(r *model.Report) ReportResponse {
	return ReportResponse{
		ID:        r.ID,
		BookingID: r.BookingID,
		Content:   r.Content,
		Homework:  r.Homework,
		Feedback:  r.Feedback,
		LogURL:    r.LogURL,
		CreatedAt: r.CreatedAt,
	}
}
