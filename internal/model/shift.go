package model

import "time"

// シフト種別
const (
	ShiftTypeIndividual = "INDIVIDUAL"
	ShiftTypeGroup      = "GROUP"
	ShiftTypeBeginner   = "BEGINNER"
	ShiftTypeTrial      = "TRIAL"
	ShiftTypeSpecial    = "SPECIAL"
)

// 開催場所
const (
	LocationOnline    = "ONLINE"
	LocationKichijoji = "KICHIJOJI"
	LocationTachikawa = "TACHIKAWA"
)

// Shift 講師シフト表 — shifts
// 時刻はすべて UTC の絶対時刻で保持する（入力は JST の壁時計）。
type Shift struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"id"`
	InstructorID string    `gorm:"type:uuid;not null;index:idx_shifts_instructor_start" json:"instructor_id"`
	StartTime    time.Time `gorm:"not null;index:idx_shifts_instructor_start"      json:"start_time"`
	EndTime      time.Time `gorm:"not null"                                        json:"end_time"`
	Type         string    `gorm:"type:varchar(20);not null;default:'INDIVIDUAL'"  json:"type"`     // INDIVIDUAL | GROUP | BEGINNER | TRIAL | SPECIAL
	Location     string    `gorm:"type:varchar(20);not null;default:'ONLINE'"      json:"location"` // ONLINE | KICHIJOJI | TACHIKAWA
	IsPublished  bool      `gorm:"not null;default:true"                           json:"is_published"`
	ClassName    *string   `gorm:"type:varchar(100)"                               json:"class_name,omitempty"`
	BaseModel

	// 関連
	Instructor *User     `gorm:"foreignKey:InstructorID;references:ID" json:"instructor,omitempty"`
	Bookings   []Booking `gorm:"foreignKey:ShiftID"                    json:"bookings,omitempty"`
}

// TableName 指定テーブル名
func (Shift) TableName() string { return "shifts" }
