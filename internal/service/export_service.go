package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/repository"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/timeutil"
)

var ErrExportNoShifts = errors.New("エクスポート対象のシフトがありません")

// ExportService エクスポートビジネスロジック
//
// 設計メモ：
//   - 全体スケジュールを Excel (.xlsx) で出力（管理者向け）
//   - ユーザー別の確定授業を iCalendar (.ics) で出力（カレンダー連携向け）
//   - いずれも bytes.Buffer で返し、Handler 層がレスポンスヘッダーを設定して書き出す
type ExportService interface {
	// ExportMasterSchedule 1か月前以降の全シフトを Excel に出力する
	ExportMasterSchedule(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportICS ユーザーの確定授業・シフトを iCalendar に出力する
	ExportICS(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService ExportService を生成する
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

var locationNames = map[string]string{
	model.LocationOnline:    "オンライン",
	model.LocationKichijoji: "吉祥寺校",
	model.LocationTachikawa: "立川校",
}

var shiftTypeNames = map[string]string{
	model.ShiftTypeIndividual: "個別",
	model.ShiftTypeGroup:      "集団",
	model.ShiftTypeBeginner:   "入門",
	model.ShiftTypeTrial:      "体験",
	model.ShiftTypeSpecial:    "特別",
}

func (s *exportService) ExportMasterSchedule(ctx context.Context) (*bytes.Buffer, string, error) {
	from := s.now().AddDate(0, -1, 0)
	shifts, err := s.repo.Shift.ListAllFrom(ctx, from)
	if err != nil {
		s.logger.Error("全体スケジュールの取得に失敗", zap.Error(err))
		return nil, "", err
	}
	if len(shifts) == 0 {
		return nil, "", ErrExportNoShifts
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "全体スケジュール"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("Excel シートの作成に失敗", zap.Error(err))
		return nil, "", err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 16)
	f.SetColWidth(sheetName, "D", "D", 8)
	f.SetColWidth(sheetName, "E", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 30)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"日付", "時間", "講師", "種別", "場所", "生徒"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s1", col)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i := range shifts {
		sh := &shifts[i]
		row := i + 2

		start := sh.StartTime.In(timeutil.JST)
		end := sh.EndTime.In(timeutil.JST)

		instructorName := sh.InstructorID
		if sh.Instructor != nil {
			instructorName = sh.Instructor.Name
		}

		var students []string
		for j := range sh.Bookings {
			if sh.Bookings[j].Student != nil {
				students = append(students, sh.Bookings[j].Student.Name)
			}
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), start.Format("2006/01/02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row),
			fmt.Sprintf("%s〜%s", start.Format("15:04"), end.Format("15:04")))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), instructorName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), displayName(shiftTypeNames, sh.Type))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), displayName(locationNames, sh.Location))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), strings.Join(students, "、"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("Excel の生成に失敗", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("master_schedule_%s.xlsx", s.now().In(timeutil.JST).Format("20060102"))
	return buf, filename, nil
}

func (s *exportService) ExportICS(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		s.logger.Error("ユーザー検索に失敗", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Loohcs塾//lesson-booking//JA")

	switch user.Role {
	case model.RoleInstructor:
		shifts, err := s.repo.Shift.ListByInstructor(ctx, userID, s.now().AddDate(0, -1, 0))
		if err != nil {
			s.logger.Error("シフト一覧の取得に失敗", zap.Error(err))
			return nil, "", err
		}
		for i := range shifts {
			sh := &shifts[i]
			summary := fmt.Sprintf("【%s】授業", displayName(shiftTypeNames, sh.Type))
			if sh.ClassName != nil {
				summary = *sh.ClassName
			}
			addCalendarEvent(cal, "shift-"+sh.ID, summary, sh)
		}
	default:
		bookings, err := s.repo.Booking.ListConfirmedByStudent(ctx, userID)
		if err != nil {
			s.logger.Error("予約一覧の取得に失敗", zap.Error(err))
			return nil, "", err
		}
		for i := range bookings {
			b := &bookings[i]
			if b.Shift == nil {
				continue
			}
			summary := "授業"
			if b.Shift.Instructor != nil {
				summary = fmt.Sprintf("授業（%s先生）", b.Shift.Instructor.Name)
			}
			addCalendarEvent(cal, "booking-"+b.ID, summary, b.Shift)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("lessons_%s.ics", s.now().In(timeutil.JST).Format("20060102"))
	return buf, filename, nil
}

func addCalendarEvent(cal *ics.Calendar, uid, summary string, shift *model.Shift) {
	event := cal.AddEvent(uid + "@loohcs-juku")
	event.SetStartAt(shift.StartTime)
	event.SetEndAt(shift.EndTime)
	event.SetSummary(summary)
	event.SetLocation(displayName(locationNames, shift.Location))
	event.SetDtStampTime(time.Now())
}

func displayName(names map[string]string, key string) string {
	if name, ok := names[key]; ok {
		return name
	}
	return key
}
