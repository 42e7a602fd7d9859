package model

// 予約ステータス
const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// 受講形態
const (
	MeetingTypeOnline   = "ONLINE"
	MeetingTypeInPerson = "IN_PERSON"
)

// Booking 授業予約表 — bookings
type Booking struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ShiftID     string `gorm:"type:uuid;not null;index"                       json:"shift_id"`
	StudentID   string `gorm:"type:uuid;not null;index"                       json:"student_id"`
	Status      string `gorm:"type:varchar(20);not null;default:'CONFIRMED'"  json:"status"`       // CONFIRMED | CANCELLED
	MeetingType string `gorm:"type:varchar(20);not null;default:'ONLINE'"     json:"meeting_type"` // ONLINE | IN_PERSON
	BaseModel

	// 関連
	Shift   *Shift  `gorm:"foreignKey:ShiftID;references:ID"   json:"shift,omitempty"`
	Student *User   `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Report  *Report `gorm:"foreignKey:BookingID"               json:"report,omitempty"`
}

// TableName 指定テーブル名
func (Booking) TableName() string { return "bookings" }
