package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
)

func setupSettingService(r *mockRepos) SettingService {
	return NewSettingService(r.repo, zap.NewNop())
}

func TestSettingService_Get_未設定はNotFound(t *testing.T) {
	r := newMockRepos()
	svc := setupSettingService(r)

	_, err := svc.Get(context.Background(), model.SettingCarteDeadlineExtensionHours)
	if !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("ErrSettingNotFound を期待: %v", err)
	}
}

func TestSettingService_Upsert_新規作成と上書き(t *testing.T) {
	r := newMockRepos()
	svc := setupSettingService(r)

	if _, err := svc.Upsert(context.Background(), &dto.UpsertSettingRequest{
		Key:   model.SettingCarteDeadlineExtensionHours,
		Value: "24",
	}); err != nil {
		t.Fatalf("作成に失敗: %v", err)
	}

	// 同一キーへの再設定は上書き
	if _, err := svc.Upsert(context.Background(), &dto.UpsertSettingRequest{
		Key:   model.SettingCarteDeadlineExtensionHours,
		Value: "48",
	}); err != nil {
		t.Fatalf("上書きに失敗: %v", err)
	}

	resp, err := svc.Get(context.Background(), model.SettingCarteDeadlineExtensionHours)
	if err != nil {
		t.Fatalf("取得に失敗: %v", err)
	}
	if resp.Value != "48" {
		t.Errorf("値が上書きされるべき: got=%s", resp.Value)
	}
}
