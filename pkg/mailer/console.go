package mailer

import (
	"context"

	"go.uber.org/zap"
)

// ConsoleMailer 開発・テスト用の Mailer。実送信せずログへ出力するだけ
type ConsoleMailer struct {
	logger *zap.Logger
}

// NewConsoleMailer ConsoleMailer を生成する
func NewConsoleMailer(logger *zap.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

func (m *ConsoleMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("メール送信（console）",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
