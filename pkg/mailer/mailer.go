// Package mailer メール送信の抽象化。
// 予約確定・リクエスト承認などの通知メールはすべてこの Mailer を経由する。
// 送信失敗は呼び出し元の業務処理に影響させない（ベストエフォート）。
package mailer

import (
	"context"

	"go.uber.org/zap"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/config"
)

// Mailer メール送信インターフェース
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// New 設定に応じた Mailer 実装を返す
func New(cfg *config.MailConfig, logger *zap.Logger) Mailer {
	switch cfg.Provider {
	case "sendgrid":
		return NewSendgridMailer(cfg, logger)
	default:
		return NewConsoleMailer(logger)
	}
}
