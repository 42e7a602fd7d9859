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

func setupArchiveService(r *mockRepos) *archiveService {
	svc := NewArchiveService(r.repo, zap.NewNop()).(*archiveService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func addAdmin(r *mockRepos, id string) *model.User {
	u := &model.User{
		ID:       id,
		Name:     "管理者",
		Email:    id + "@example.com",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	r.users.users[id] = u
	return u
}

// ── Archive / Unarchive ──

func TestArchiveService_Archive_成功(t *testing.T) {
	r := newMockRepos()
	svc := setupArchiveService(r)
	addAdmin(r, "admin-1")
	addStudent(r, "student-1")

	err := svc.Archive(context.Background(), "admin-1", "student-1", &dto.ArchiveUserRequest{ArchiveYear: 2025})
	if err != nil {
		t.Fatalf("アーカイブに失敗: %v", err)
	}

	// 保存済みの状態で検証する
	student := r.users.users["student-1"]
	if student.ArchivedAt == nil || student.ArchiveYear == nil || *student.ArchiveYear != 2025 {
		t.Error("アーカイブ日時と年度が設定されるべき")
	}
	if student.IsActive {
		t.Error("アーカイブでアカウントは無効化されるべき")
	}
	if student.CanLogin() {
		t.Error("アーカイブ済みユーザーはログイン不可であるべき")
	}
}

func TestArchiveService_Archive_自分自身は拒否(t *testing.T) {
	r := newMockRepos()
	svc := setupArchiveService(r)
	addAdmin(r, "admin-1")

	err := svc.Archive(context.Background(), "admin-1", "admin-1", &dto.ArchiveUserRequest{ArchiveYear: 2025})
	if !errors.Is(err, ErrSelfArchive) {
		t.Errorf("ErrSelfArchive を期待: %v", err)
	}
}

func TestArchiveService_Unarchive_全フィールドが戻る(t *testing.T) {
	r := newMockRepos()
	svc := setupArchiveService(r)
	addAdmin(r, "admin-1")
	addStudent(r, "student-1")

	if err := svc.Archive(context.Background(), "admin-1", "student-1", &dto.ArchiveUserRequest{ArchiveYear: 2025}); err != nil {
		t.Fatalf("アーカイブに失敗: %v", err)
	}
	if err := svc.Unarchive(context.Background(), "student-1"); err != nil {
		t.Fatalf("アーカイブ解除に失敗: %v", err)
	}

	student := r.users.users["student-1"]
	if student.ArchivedAt != nil || student.ArchiveYear != nil {
		t.Error("解除でアーカイブ情報は消去されるべき")
	}
	if !student.CanLogin() {
		t.Error("解除後はログイン可能に戻るべき")
	}
}

func TestArchiveService_Unarchive_未アーカイブでも安全(t *testing.T) {
	r := newMockRepos()
	svc := setupArchiveService(r)
	addStudent(r, "student-1")

	if err := svc.Unarchive(context.Background(), "student-1"); err != nil {
		t.Errorf("未アーカイブのユーザーにも安全であるべき: %v", err)
	}
}

// ── Grant / Revoke ──

func TestArchiveService_Grant_再付与は冪等(t *testing.T) {
	r := newMockRepos()
	svc := setupArchiveService(r)
	addInstructor(r, "inst-1")
	addStudent(r, "student-1")

	req := &dto.GrantArchiveAccessRequest{InstructorID: "inst-1", StudentID: "student-1"}
	if err := svc.Grant(context.Background(), req); err != nil {
		t.Fatalf("付与に失敗: %v", err)
	}
	if err := svc.Grant(context.Background(), req); err != nil {
		t.Errorf("再付与は冪等であるべき: %v", err)
	}
	if len(r.accesses.accesses) != 1 {
		t.Errorf("権限は1件であるべき: got=%d", len(r.accesses.accesses))
	}
}

func TestArchiveService_Grant_講師以外には付与不可(t *testing.T) {
	r := newMockRepos()
	svc := setupArchiveService(r)
	addStudent(r, "student-1")
	addStudent(r, "student-2")

	err := svc.Grant(context.Background(), &dto.GrantArchiveAccessRequest{
		InstructorID: "student-2", StudentID: "student-1",
	})
	if !errors.Is(err, ErrNotInstructor) {
		t.Errorf("ErrNotInstructor を期待: %v", err)
	}
}

func TestArchiveService_Revoke_存在しないペアでも成功(t *testing.T) {
	r := newMockRepos()
	svc := setupArchiveService(r)

	if err := svc.Revoke(context.Background(), "inst-x", "student-x"); err != nil {
		t.Errorf("取り消しは冪等であるべき: %v", err)
	}
}

func TestArchiveService_ListAccesses_生徒で絞り込める(t *testing.T) {
	r := newMockRepos()
	svc := setupArchiveService(r)
	addInstructor(r, "inst-1")
	addInstructor(r, "inst-2")
	addStudent(r, "student-1")
	addStudent(r, "student-2")

	for _, req := range []*dto.GrantArchiveAccessRequest{
		{InstructorID: "inst-1", StudentID: "student-1"},
		{InstructorID: "inst-2", StudentID: "student-2"},
	} {
		if err := svc.Grant(context.Background(), req); err != nil {
			t.Fatalf("付与に失敗: %v", err)
		}
	}

	all, err := svc.ListAccesses(context.Background(), "")
	if err != nil {
		t.Fatalf("一覧取得に失敗: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("全件は2件であるべき: got=%d", len(all))
	}
	for _, a := range all {
		if a.Instructor == nil || a.Student == nil {
			t.Error("講師と生徒の情報が含まれるべき")
		}
	}

	filtered, err := svc.ListAccesses(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("絞り込みに失敗: %v", err)
	}
	if len(filtered) != 1 || filtered[0].InstructorID != "inst-1" {
		t.Errorf("student-1 の権限は inst-1 の1件であるべき: %+v", filtered)
	}
}

// ── Search ──

func archiveStudent(r *mockRepos, id string, year int) *model.User {
	student := addStudent(r, id)
	archivedAt := testNow
	student.ArchivedAt = &archivedAt
	student.ArchiveYear = &year
	student.IsActive = false
	return student
}

func TestArchiveService_Search_年度と学校名で絞り込み(t *testing.T) {
	r := newMockRepos()
	svc := setupArchiveService(r)
	archiveStudent(r, "student-1", 2024)
	archiveStudent(r, "student-2", 2025)
	addStudent(r, "student-3") // 未アーカイブ

	r.admission.results["student-2"] = []model.AdmissionResult{
		{StudentID: "student-2", SchoolName: "早稲田大学", Status: model.AdmissionStatusPassedFinal},
	}

	resp, err := svc.Search(context.Background(), &dto.ArchivedUserQuery{Year: 2025, School: "早稲田"})
	if err != nil {
		t.Fatalf("検索に失敗: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "student-2" {
		t.Fatalf("student-2 の1件を期待: got=%d", len(resp))
	}
	if len(resp[0].AdmissionResults) != 1 {
		t.Error("合否結果が付与されるべき")
	}
}

func TestArchiveService_Search_合格バケットは一次と最終を含む(t *testing.T) {
	r := newMockRepos()
	svc := setupArchiveService(r)
	archiveStudent(r, "student-1", 2025)
	archiveStudent(r, "student-2", 2025)
	archiveStudent(r, "student-3", 2025)

	r.admission.results["student-1"] = []model.AdmissionResult{
		{StudentID: "student-1", SchoolName: "A大学", Status: model.AdmissionStatusPassedFirst},
	}
	r.admission.results["student-2"] = []model.AdmissionResult{
		{StudentID: "student-2", SchoolName: "B大学", Status: model.AdmissionStatusPassedFinal},
	}
	r.admission.results["student-3"] = []model.AdmissionResult{
		{StudentID: "student-3", SchoolName: "C大学", Status: model.AdmissionStatusRejected},
	}

	resp, err := svc.Search(context.Background(), &dto.ArchivedUserQuery{Status: "PASSED"})
	if err != nil {
		t.Fatalf("検索に失敗: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("PASSED バケットは一次合格＋最終合格の2件: got=%d", len(resp))
	}
	for _, u := range resp {
		if u.ID == "student-3" {
			t.Error("不合格の生徒が含まれている")
		}
	}
}

// ── ListLicensed ──

func TestArchiveService_ListLicensed_許可された生徒のみ(t *testing.T) {
	r := newMockRepos()
	svc := setupArchiveService(r)
	addInstructor(r, "inst-1")
	archiveStudent(r, "student-1", 2025)
	archiveStudent(r, "student-2", 2025)

	_ = r.accesses.Grant(context.Background(), &model.ArchiveAccess{
		InstructorID: "inst-1", StudentID: "student-1",
	})

	resp, err := svc.ListLicensed(context.Background(), "inst-1")
	if err != nil {
		t.Fatalf("取得に失敗: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "student-1" {
		t.Errorf("許可された student-1 のみを期待: got=%d", len(resp))
	}
}
