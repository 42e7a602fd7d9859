package dto

// ── アーカイブモジュール DTO ──

// ArchiveUserRequest ユーザーアーカイブリクエスト
type ArchiveUserRequest struct {
	ArchiveYear int `json:"archive_year" binding:"required,min=2000,max=2100"` // 卒業・退塾年度
}

// GrantArchiveAccessRequest アーカイブ閲覧権限付与リクエスト
type GrantArchiveAccessRequest struct {
	InstructorID string `json:"instructor_id" binding:"required,uuid"`
	StudentID    string `json:"student_id"    binding:"required,uuid"`
}

// ArchivedUserQuery アーカイブ済みユーザー検索条件
// status は合否ステータスまたは集約バケット "PASSED"（PASSED_FIRST + PASSED_FINAL）
type ArchivedUserQuery struct {
	Role   string `form:"role"   binding:"omitempty,oneof=STUDENT INSTRUCTOR"`
	Year   int    `form:"year"   binding:"omitempty,min=2000,max=2100"`
	School string `form:"school" binding:"omitempty,max=255"` // 学校名の部分一致
	Status string `form:"status" binding:"omitempty,oneof=PENDING PASSED PASSED_FIRST PASSED_FINAL REJECTED WITHDRAWN"`
}

// ArchivedUserResponse アーカイブ済みユーザー応答（合否結果つき）
type ArchivedUserResponse struct {
	UserResponse
	AdmissionResults []AdmissionResultResponse `json:"admission_results,omitempty"`
}

// ArchiveAccessResponse 閲覧権限応答
type ArchiveAccessResponse struct {
	ID           string        `json:"id"`
	InstructorID string        `json:"instructor_id"`
	StudentID    string        `json:"student_id"`
	Instructor   *UserResponse `json:"instructor,omitempty"`
	Student      *UserResponse `json:"student,omitempty"`
}
