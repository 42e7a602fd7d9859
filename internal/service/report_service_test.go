package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/timeutil"
)

func setupReportService(r *mockRepos, now time.Time) *reportService {
	svc := NewReportService(r.repo, zap.NewNop()).(*reportService)
	svc.now = func() time.Time { return now }
	return svc
}

// 授業つきの予約を用意する。開始は JST 2025-06-10（火）10:00
func setupLessonBooking(r *mockRepos) *model.Booking {
	addInstructor(r, "inst-1")
	addStudent(r, "student-1")
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, timeutil.JST)
	shift := addShift(r, "inst-1", model.ShiftTypeIndividual, start, time.Hour)
	booking := &model.Booking{ShiftID: shift.ID, StudentID: "student-1", Status: model.BookingStatusConfirmed}
	r.bookings.insert(booking)
	return booking
}

func submitReq(bookingID string) *dto.SubmitReportRequest {
	return &dto.SubmitReportRequest{BookingID: bookingID, Content: "本日の授業内容"}
}

// ── Submit：提出可能期間 ──

func TestReportService_Submit_授業開始前は拒否(t *testing.T) {
	r := newMockRepos()
	booking := setupLessonBooking(r)
	// 授業開始の1分前
	now := time.Date(2025, 6, 10, 9, 59, 0, 0, timeutil.JST)
	svc := setupReportService(r, now)

	_, err := svc.Submit(context.Background(), "inst-1", submitReq(booking.ID))
	if !errors.Is(err, ErrReportTooEarly) {
		t.Errorf("ErrReportTooEarly を期待: %v", err)
	}
}

func TestReportService_Submit_当日中は提出可能(t *testing.T) {
	r := newMockRepos()
	booking := setupLessonBooking(r)
	// 当日 23:59 JST
	now := time.Date(2025, 6, 10, 23, 59, 0, 0, timeutil.JST)
	svc := setupReportService(r, now)

	resp, err := svc.Submit(context.Background(), "inst-1", submitReq(booking.ID))
	if err != nil {
		t.Fatalf("提出に失敗: %v", err)
	}
	if resp.Content != "本日の授業内容" {
		t.Errorf("カルテ内容が不正: got=%s", resp.Content)
	}
}

func TestReportService_Submit_翌日は期限切れ(t *testing.T) {
	r := newMockRepos()
	booking := setupLessonBooking(r)
	// 翌日 00:01 JST
	now := time.Date(2025, 6, 11, 0, 1, 0, 0, timeutil.JST)
	svc := setupReportService(r, now)

	_, err := svc.Submit(context.Background(), "inst-1", submitReq(booking.ID))
	if !errors.Is(err, ErrReportExpired) {
		t.Errorf("ErrReportExpired を期待: %v", err)
	}
}

// ── Submit：延長設定 ──

func setExtension(r *mockRepos, value string) {
	r.settings.settings[model.SettingCarteDeadlineExtensionHours] = &model.GlobalSetting{
		Key:   model.SettingCarteDeadlineExtensionHours,
		Value: value,
	}
}

func TestReportService_Submit_延長24時間で翌日も提出可能(t *testing.T) {
	r := newMockRepos()
	booking := setupLessonBooking(r)
	setExtension(r, "24")

	// 火曜10:00の授業。延長24時間なら水曜23:59:59.999まで提出可能
	now := time.Date(2025, 6, 11, 23, 0, 0, 0, timeutil.JST)
	svc := setupReportService(r, now)
	if _, err := svc.Submit(context.Background(), "inst-1", submitReq(booking.ID)); err != nil {
		t.Errorf("延長期間内の提出は成功すべき: %v", err)
	}
}

func TestReportService_Submit_延長24時間でも木曜は期限切れ(t *testing.T) {
	r := newMockRepos()
	booking := setupLessonBooking(r)
	setExtension(r, "24")

	now := time.Date(2025, 6, 12, 0, 1, 0, 0, timeutil.JST)
	svc := setupReportService(r, now)
	_, err := svc.Submit(context.Background(), "inst-1", submitReq(booking.ID))
	if !errors.Is(err, ErrReportExpired) {
		t.Errorf("ErrReportExpired を期待: %v", err)
	}
}

func TestReportService_Submit_不正な延長設定は延長なし(t *testing.T) {
	r := newMockRepos()
	booking := setupLessonBooking(r)
	setExtension(r, "abc")

	now := time.Date(2025, 6, 11, 0, 1, 0, 0, timeutil.JST)
	svc := setupReportService(r, now)
	_, err := svc.Submit(context.Background(), "inst-1", submitReq(booking.ID))
	if !errors.Is(err, ErrReportExpired) {
		t.Errorf("不正値は延長なし扱いで ErrReportExpired を期待: %v", err)
	}
}

// ── Submit：一意性・権限 ──

func TestReportService_Submit_二重提出は拒否(t *testing.T) {
	r := newMockRepos()
	booking := setupLessonBooking(r)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, timeutil.JST)
	svc := setupReportService(r, now)

	if _, err := svc.Submit(context.Background(), "inst-1", submitReq(booking.ID)); err != nil {
		t.Fatalf("1回目の提出に失敗: %v", err)
	}
	_, err := svc.Submit(context.Background(), "inst-1", submitReq(booking.ID))
	if !errors.Is(err, ErrReportExists) {
		t.Errorf("ErrReportExists を期待: %v", err)
	}
}

func TestReportService_Submit_担当講師以外は拒否(t *testing.T) {
	r := newMockRepos()
	booking := setupLessonBooking(r)
	addInstructor(r, "inst-2")
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, timeutil.JST)
	svc := setupReportService(r, now)

	_, err := svc.Submit(context.Background(), "inst-2", submitReq(booking.ID))
	if !errors.Is(err, ErrReportForbidden) {
		t.Errorf("ErrReportForbidden を期待: %v", err)
	}
}

func TestReportService_Submit_予約なしは拒否(t *testing.T) {
	r := newMockRepos()
	addInstructor(r, "inst-1")
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, timeutil.JST)
	svc := setupReportService(r, now)

	_, err := svc.Submit(context.Background(), "inst-1", submitReq("booking-nothing"))
	if !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("ErrBookingNotFound を期待: %v", err)
	}
}
