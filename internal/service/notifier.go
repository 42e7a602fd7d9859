package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/mailer"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/timeutil"
)

// Notifier コミット後のメール通知
// 送信はベストエフォート。失敗してもログに残すだけで、呼び出し元の結果には影響しない。
type Notifier struct {
	mailer mailer.Mailer
	logger *zap.Logger
}

// NewNotifier Notifier を生成する
func NewNotifier(m mailer.Mailer, logger *zap.Logger) *Notifier {
	return &Notifier{mailer: m, logger: logger}
}

// send 非同期送信。呼び出し元のリクエストコンテキストには紐付けない
func (n *Notifier) send(to, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := n.mailer.Send(ctx, to, subject, body); err != nil {
			n.logger.Warn("通知メールの送信に失敗",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err),
			)
		}
	}()
}

func formatJSTRange(start, end time.Time) string {
	s := start.In(timeutil.JST)
	e := end.In(timeutil.JST)
	return fmt.Sprintf("%s〜%s", s.Format("2006年1月2日 15:04"), e.Format("15:04"))
}

// BookingCreated 予約確定を生徒と講師に通知する
func (n *Notifier) BookingCreated(student, instructor *model.User, shift *model.Shift) {
	when := formatJSTRange(shift.StartTime, shift.EndTime)
	n.send(student.Email,
		"【Loohcs塾】授業予約が確定しました",
		fmt.Sprintf("%s さん\n\n以下の授業予約が確定しました。\n\n講師：%s\n日時：%s\n\nLoohcs塾",
			student.Name, instructor.Name, when),
	)
	n.send(instructor.Email,
		"【Loohcs塾】新しい授業予約が入りました",
		fmt.Sprintf("%s さん\n\n以下の授業に新しい予約が入りました。\n\n生徒：%s\n日時：%s\n\nLoohcs塾",
			instructor.Name, student.Name, when),
	)
}

// BookingCancelled 予約キャンセルを生徒と講師に通知する
func (n *Notifier) BookingCancelled(student, instructor *model.User, shift *model.Shift) {
	when := formatJSTRange(shift.StartTime, shift.EndTime)
	n.send(student.Email,
		"【Loohcs塾】授業予約をキャンセルしました",
		fmt.Sprintf("%s さん\n\n以下の授業予約のキャンセルを受け付けました。\n\n講師：%s\n日時：%s\n\nLoohcs塾",
			student.Name, instructor.Name, when),
	)
	n.send(instructor.Email,
		"【Loohcs塾】授業予約がキャンセルされました",
		fmt.Sprintf("%s さん\n\n以下の授業予約がキャンセルされました。\n\n生徒：%s\n日時：%s\n\nLoohcs塾",
			instructor.Name, student.Name, when),
	)
}

// RequestCreated 日程リクエスト受信を講師に通知する
func (n *Notifier) RequestCreated(student, instructor *model.User, req *model.ScheduleRequest) {
	when := formatJSTRange(req.StartTime, req.EndTime)
	n.send(instructor.Email,
		"【Loohcs塾】新しい日程リクエストが届きました",
		fmt.Sprintf("%s さん\n\n%s さんから日程リクエストが届いています。\n\n希望日時：%s\n\nマイページからご確認ください。\n\nLoohcs塾",
			instructor.Name, student.Name, when),
	)
}

// RequestApproved リクエスト承認を生徒と講師に通知する
func (n *Notifier) RequestApproved(student, instructor *model.User, req *model.ScheduleRequest) {
	when := formatJSTRange(req.StartTime, req.EndTime)
	n.send(student.Email,
		"【Loohcs塾】日程リクエストが承認されました",
		fmt.Sprintf("%s さん\n\n日程リクエストが承認され、授業予約が確定しました。\n\n講師：%s\n日時：%s\n\nLoohcs塾",
			student.Name, instructor.Name, when),
	)
	n.send(instructor.Email,
		"【Loohcs塾】日程リクエストを承認しました",
		fmt.Sprintf("%s さん\n\n以下の日程リクエストを承認し、授業予約が作成されました。\n\n生徒：%s\n日時：%s\n\nLoohcs塾",
			instructor.Name, student.Name, when),
	)
}

// RequestRejected リクエスト却下を生徒に通知する
func (n *Notifier) RequestRejected(student *model.User, req *model.ScheduleRequest) {
	when := formatJSTRange(req.StartTime, req.EndTime)
	n.send(student.Email,
		"【Loohcs塾】日程リクエストについて",
		fmt.Sprintf("%s さん\n\n以下の日程リクエストは承認されませんでした。\n別の日時で改めてリクエストをお送りください。\n\n希望日時：%s\n\nLoohcs塾",
			student.Name, when),
	)
}
