package model

// 合否ステータス
const (
	AdmissionStatusPending     = "PENDING"
	AdmissionStatusPassedFirst = "PASSED_FIRST"
	AdmissionStatusPassedFinal = "PASSED_FINAL"
	AdmissionStatusRejected    = "REJECTED"
	AdmissionStatusWithdrawn   = "WITHDRAWN"
)

// AdmissionResult 受験合否結果表 — admission_results
// 編集は全件削除→再作成の置き換え方式で行う。
type AdmissionResult struct {
	ID         string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID  string  `gorm:"type:uuid;not null;index"                       json:"student_id"`
	SchoolName string  `gorm:"type:varchar(255);not null"                     json:"school_name"`
	Department *string `gorm:"type:varchar(255)"                              json:"department,omitempty"`
	Rank       int     `gorm:"not null;default:0"                             json:"rank"`
	Status     string  `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"` // PENDING | PASSED_FIRST | PASSED_FINAL | REJECTED | WITHDRAWN
	BaseModel

	// 関連
	Student *User `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
}

// TableName 指定テーブル名
func (AdmissionResult) TableName() string { return "admission_results" }
