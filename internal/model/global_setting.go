package model

// グローバル設定キー
const (
	// SettingCarteDeadlineExtensionHours カルテ提出期限の延長時間（時間単位、0以上の整数）
	SettingCarteDeadlineExtensionHours = "CARTE_DEADLINE_EXTENSION_HOURS"
)

// GlobalSetting グローバル設定表 — global_settings（key-value）
type GlobalSetting struct {
	Key         string  `gorm:"type:varchar(100);primaryKey" json:"key"`
	Value       string  `gorm:"type:varchar(255);not null"   json:"value"`
	Description *string `gorm:"type:text"                    json:"description,omitempty"`
	BaseModel
}

// TableName 指定テーブル名
func (GlobalSetting) TableName() string { return "global_settings" }
