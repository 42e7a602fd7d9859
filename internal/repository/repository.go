package repository

import (
	"errors"

	"gorm.io/gorm"
)

// 書き込み時検証で検出される競合エラー。
// サービス層が errors.Is で各モジュールのエラーへ変換する。
var (
	ErrShiftOverlap   = errors.New("同時間帯に既にシフトが存在します")
	ErrSlotTaken      = errors.New("既に予約が入っています")
	ErrStudentOverlap = errors.New("この生徒は同時間帯に既に授業予約があります")
)

// Repository 全 Repository の集約
type Repository struct {
	User            UserRepository
	Shift           ShiftRepository
	Booking         BookingRepository
	ScheduleRequest ScheduleRequestRepository
	Report          ReportRepository
	AdmissionResult AdmissionResultRepository
	ArchiveAccess   ArchiveAccessRepository
	GlobalSetting   GlobalSettingRepository
}

// NewRepository Repository 集約を生成する
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:            NewUserRepo(db),
		Shift:           NewShiftRepo(db),
		Booking:         NewBookingRepo(db),
		ScheduleRequest: NewScheduleRequestRepo(db),
		Report:          NewReportRepo(db),
		AdmissionResult: NewAdmissionResultRepo(db),
		ArchiveAccess:   NewArchiveAccessRepo(db),
		GlobalSetting:   NewGlobalSettingRepo(db),
	}
}
