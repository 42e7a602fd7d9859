package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

func setupUserService(r *mockRepos) *userService {
	svc := NewUserService(r.repo, zap.NewNop()).(*userService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestUserService_ListInstructors_アーカイブ済みは除外(t *testing.T) {
	r := newMockRepos()
	svc := setupUserService(r)
	addInstructor(r, "inst-1")
	archived := addInstructor(r, "inst-2")
	archivedAt := testNow
	archived.ArchivedAt = &archivedAt
	archived.IsActive = false
	addStudent(r, "student-1")

	resp, err := svc.ListInstructors(context.Background())
	if err != nil {
		t.Fatalf("取得に失敗: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "inst-1" {
		t.Errorf("有効な講師のみ1件を期待: got=%d", len(resp))
	}
}

func TestUserService_AdminList_講師に稼働統計を付与(t *testing.T) {
	r := newMockRepos()
	svc := setupUserService(r)
	addInstructor(r, "inst-1")
	addStudent(r, "student-1")

	// 今月中の実施済み授業（終了が現在より前）
	start := testNow.Add(-48 * time.Hour)
	shift := addShift(r, "inst-1", model.ShiftTypeIndividual, start, time.Hour)
	r.bookings.insert(&model.Booking{
		ShiftID: shift.ID, StudentID: "student-1", Status: model.BookingStatusConfirmed,
	})

	resp, err := svc.AdminList(context.Background())
	if err != nil {
		t.Fatalf("取得に失敗: %v", err)
	}

	var found bool
	for _, row := range resp {
		switch row.Role {
		case model.RoleInstructor:
			found = true
			if row.Stats == nil {
				t.Fatal("講師には統計が付与されるべき")
			}
			if row.Stats.ShiftsThisMonth != 1 {
				t.Errorf("今月のシフト数が不正: got=%d", row.Stats.ShiftsThisMonth)
			}
			if row.Stats.LessonsThisMonth != 1 {
				t.Errorf("今月の授業数が不正: got=%d", row.Stats.LessonsThisMonth)
			}
			if row.Stats.LessonsTotal != 1 {
				t.Errorf("累計授業数が不正: got=%d", row.Stats.LessonsTotal)
			}
		case model.RoleStudent:
			if row.Stats != nil {
				t.Error("生徒に統計は付与されない")
			}
		}
	}
	if !found {
		t.Error("講師が一覧に含まれるべき")
	}
}
