package dto

import (
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

// ── 合否結果モジュール DTO ──

// AdmissionResultInput 合否結果の1件
type AdmissionResultInput struct {
	SchoolName string  `json:"school_name" binding:"required,max=255"`
	Department *string `json:"department"  binding:"omitempty,max=255"`
	Rank       int     `json:"rank"        binding:"omitempty,min=0"`
	Status     string  `json:"status"      binding:"required,oneof=PENDING PASSED_FIRST PASSED_FINAL REJECTED WITHDRAWN"`
}

// ReplaceAdmissionResultsRequest 合否結果の一括置き換えリクエスト
// 対象生徒の既存結果を全件削除し、本リストで作り直す。
type ReplaceAdmissionResultsRequest struct {
	Results []AdmissionResultInput `json:"results" binding:"required,dive"`
}

// AdmissionResultResponse 合否結果応答
type AdmissionResultResponse struct {
	ID         string  `json:"id"`
	StudentID  string  `json:"student_id"`
	SchoolName string  `json:"school_name"`
	Department *string `json:"department,omitempty"`
	Rank       int     `json:"rank"`
	Status     string  `json:"status"`
}

// NewAdmissionResultResponses 合否結果一覧の変換
func NewAdmissionResultResponses(results []model.AdmissionResult) []AdmissionResultResponse {
	out := make([]AdmissionResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, AdmissionResultResponse{
			ID:         r.ID,
			StudentID:  r.StudentID,
			SchoolName: r.SchoolName,
			Department: r.Department,
			Rank:       r.Rank,
			Status:     r.Status,
		})
	}
	return out
}
