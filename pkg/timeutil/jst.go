package timeutil

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateTime 日付・時刻の形式エラー
var ErrInvalidDateTime = errors.New("日時の形式が不正です")

// ── JST 時刻正規化 ──
//
// 画面から受け取る日付・時刻はすべて日本時間（Asia/Tokyo）の壁時計表記。
// 保存・比較は必ず絶対時刻（time.Time / UTC インスタント）で行い、
// 夏時間やタイムゾーン差異による判定ずれを避ける。

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// JST 日本標準時。起動時に一度だけ解決する
var JST = mustLoadJST()

func mustLoadJST() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		// tzdata が無い環境向けのフォールバック（JST は UTC+9 固定・夏時間なし）
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// ParseJST "2006-01-02" と "15:04" の組を JST として解釈し絶対時刻を返す
func ParseJST(dateStr, timeStr string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, dateStr+" "+timeStr, JST)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w (%s %s)", ErrInvalidDateTime, dateStr, timeStr)
	}
	return t, nil
}

// EndOfDay 指定時刻の属する JST 日付の 23:59:59.999 を返す
func EndOfDay(t time.Time) time.Time {
	local := t.In(JST)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999_000_000, JST)
}

// DefaultLessonDuration シフト種別ごとのデフォルト授業時間
// 集団・特別パックは2時間、それ以外は1時間
func DefaultLessonDuration(shiftType string) time.Duration {
	switch shiftType {
	case "GROUP", "SPECIAL":
		return 2 * time.Hour
	default:
		return time.Hour
	}
}
