package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

func setupRequestService(r *mockRepos) ScheduleRequestService {
	return NewScheduleRequestService(r.repo, newTestNotifier(), zap.NewNop())
}

// ── Create ──

func TestScheduleRequestService_Create_終了省略時は1時間(t *testing.T) {
	r := newMockRepos()
	svc := setupRequestService(r)
	addInstructor(r, "inst-1")
	addStudent(r, "student-1")

	resp, err := svc.Create(context.Background(), "student-1", &dto.CreateScheduleRequestRequest{
		InstructorID: "inst-1",
		Date:         "2025-06-20",
		StartTime:    "14:00",
	})
	if err != nil {
		t.Fatalf("作成に失敗: %v", err)
	}
	if got := resp.EndTime.Sub(resp.StartTime); got != time.Hour {
		t.Errorf("既定のリクエスト時間は1時間: got=%v", got)
	}
	if resp.Status != model.RequestStatusPending {
		t.Errorf("作成直後のステータスは PENDING: got=%s", resp.Status)
	}
}

func TestScheduleRequestService_Create_講師以外への送信は拒否(t *testing.T) {
	r := newMockRepos()
	svc := setupRequestService(r)
	addStudent(r, "student-1")
	addStudent(r, "student-2")

	_, err := svc.Create(context.Background(), "student-1", &dto.CreateScheduleRequestRequest{
		InstructorID: "student-2",
		Date:         "2025-06-20",
		StartTime:    "14:00",
	})
	if !errors.Is(err, ErrNotInstructor) {
		t.Errorf("ErrNotInstructor を期待: %v", err)
	}
}

// ── Approve ──

func addPendingRequest(r *mockRepos, studentID, instructorID string, start time.Time) *model.ScheduleRequest {
	req := &model.ScheduleRequest{
		StudentID:    studentID,
		InstructorID: instructorID,
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
		Status:       model.RequestStatusPending,
	}
	_ = r.requests.Create(context.Background(), req)
	return req
}

func TestScheduleRequestService_Approve_シフトと予約に昇格(t *testing.T) {
	r := newMockRepos()
	svc := setupRequestService(r)
	addInstructor(r, "inst-1")
	addStudent(r, "student-1")
	req := addPendingRequest(r, "student-1", "inst-1", testNow.Add(72*time.Hour))

	resp, err := svc.Approve(context.Background(), "inst-1", req.ID)
	if err != nil {
		t.Fatalf("承認に失敗: %v", err)
	}
	if resp.Status != model.RequestStatusApproved {
		t.Errorf("ステータスは APPROVED: got=%s", resp.Status)
	}

	if len(r.shifts.shifts) != 1 {
		t.Fatalf("シフトが1件作成されるべき: got=%d", len(r.shifts.shifts))
	}
	for _, sh := range r.shifts.shifts {
		if sh.Type != model.ShiftTypeIndividual {
			t.Errorf("昇格シフトの種別は INDIVIDUAL: got=%s", sh.Type)
		}
		if sh.Location != model.LocationOnline {
			t.Errorf("昇格シフトの場所は ONLINE: got=%s", sh.Location)
		}
		if !sh.StartTime.Equal(req.StartTime) || !sh.EndTime.Equal(req.EndTime) {
			t.Error("昇格シフトの時間帯はリクエストと一致すべき")
		}
	}

	if len(r.bookings.bookings) != 1 {
		t.Fatalf("予約が1件作成されるべき: got=%d", len(r.bookings.bookings))
	}
	for _, b := range r.bookings.bookings {
		if b.Status != model.BookingStatusConfirmed {
			t.Errorf("昇格予約のステータスは CONFIRMED: got=%s", b.Status)
		}
		if b.StudentID != "student-1" {
			t.Errorf("昇格予約の生徒が不正: got=%s", b.StudentID)
		}
	}
}

func TestScheduleRequestService_Approve_重複チェックなしで昇格(t *testing.T) {
	r := newMockRepos()
	svc := setupRequestService(r)
	addInstructor(r, "inst-1")
	addStudent(r, "student-1")

	// 同時間帯に既存シフトがあっても承認は通る
	start := testNow.Add(72 * time.Hour)
	addShift(r, "inst-1", model.ShiftTypeIndividual, start, time.Hour)
	req := addPendingRequest(r, "student-1", "inst-1", start)

	if _, err := svc.Approve(context.Background(), "inst-1", req.ID); err != nil {
		t.Errorf("承認に重複チェックは適用されない: %v", err)
	}
	if len(r.shifts.shifts) != 2 {
		t.Errorf("重複するシフトも作成されるべき: got=%d", len(r.shifts.shifts))
	}
}

func TestScheduleRequestService_Approve_宛先講師以外は拒否(t *testing.T) {
	r := newMockRepos()
	svc := setupRequestService(r)
	addInstructor(r, "inst-1")
	addInstructor(r, "inst-2")
	addStudent(r, "student-1")
	req := addPendingRequest(r, "student-1", "inst-1", testNow.Add(72*time.Hour))

	_, err := svc.Approve(context.Background(), "inst-2", req.ID)
	if !errors.Is(err, ErrRequestForbidden) {
		t.Errorf("ErrRequestForbidden を期待: %v", err)
	}
}

func TestScheduleRequestService_Approve_処理済みは不変(t *testing.T) {
	r := newMockRepos()
	svc := setupRequestService(r)
	addInstructor(r, "inst-1")
	addStudent(r, "student-1")
	req := addPendingRequest(r, "student-1", "inst-1", testNow.Add(72*time.Hour))
	req.Status = model.RequestStatusRejected

	_, err := svc.Approve(context.Background(), "inst-1", req.ID)
	if !errors.Is(err, ErrRequestNotPending) {
		t.Errorf("ErrRequestNotPending を期待: %v", err)
	}
}

// ── Reject ──

func TestScheduleRequestService_Reject_成功(t *testing.T) {
	r := newMockRepos()
	svc := setupRequestService(r)
	addInstructor(r, "inst-1")
	addStudent(r, "student-1")
	req := addPendingRequest(r, "student-1", "inst-1", testNow.Add(72*time.Hour))

	if err := svc.Reject(context.Background(), "inst-1", req.ID); err != nil {
		t.Fatalf("却下に失敗: %v", err)
	}
	if req.Status != model.RequestStatusRejected {
		t.Errorf("ステータスは REJECTED: got=%s", req.Status)
	}
	// 却下ではシフト・予約は作成されない
	if len(r.shifts.shifts) != 0 || len(r.bookings.bookings) != 0 {
		t.Error("却下でシフト・予約が作成されてはならない")
	}
}

func TestScheduleRequestService_Reject_承認済みは不変(t *testing.T) {
	r := newMockRepos()
	svc := setupRequestService(r)
	addInstructor(r, "inst-1")
	addStudent(r, "student-1")
	req := addPendingRequest(r, "student-1", "inst-1", testNow.Add(72*time.Hour))
	req.Status = model.RequestStatusApproved

	err := svc.Reject(context.Background(), "inst-1", req.ID)
	if !errors.Is(err, ErrRequestNotPending) {
		t.Errorf("ErrRequestNotPending を期待: %v", err)
	}
}
