package model

// Report 授業カルテ表 — reports
// 予約ごとに必ず1件。提出後の編集・削除は行わない（追記専用）。
type Report struct {
	ID        string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingID string  `gorm:"type:uuid;not null;uniqueIndex"                 json:"booking_id"`
	Content   string  `gorm:"type:text;not null"                             json:"content"`
	Homework  *string `gorm:"type:text"                                      json:"homework,omitempty"`
	Feedback  *string `gorm:"type:text"                                      json:"feedback,omitempty"`
	LogURL    *string `gorm:"type:text"                                      json:"log_url,omitempty"`
	BaseModel

	// 関連
	Booking *Booking `gorm:"foreignKey:BookingID;references:ID" json:"booking,omitempty"`
}

// TableName 指定テーブル名
func (Report) TableName() string { return "reports" }
