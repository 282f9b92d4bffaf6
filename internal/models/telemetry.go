package models

import "time"

// TelemetrySession 客户端会话表。session_id/user_id 均为浏览器生成的匿名标识
type TelemetrySession struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	SessionID    string    `gorm:"not null;uniqueIndex" json:"session_id"`
	UserID       string    `gorm:"not null;index" json:"user_id"`
	EntryPage    string    `json:"entry_page"`
	DeviceType   string    `json:"device_type"`
	Browser      string    `json:"browser"`
	OS           string    `json:"os"`
	PageViews    int       `json:"page_views"`
	EventsCount  int       `json:"events_count"`
	StartedAt    time.Time `json:"started_at"`
	LastActivity time.Time `json:"last_activity"`
}

// TableName 指定表名
func (TelemetrySession) TableName() string {
	return "telemetry_sessions"
}

// TelemetryEvent 客户端埋点事件表，只追加不修改
type TelemetryEvent struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	SessionID  string    `gorm:"not null;index" json:"session_id"`
	UserID     string    `gorm:"not null;index" json:"user_id"`
	EventName  string    `gorm:"not null;index" json:"event_name"`
	Data       JSON      `gorm:"type:json" json:"data"`
	OccurredAt time.Time `gorm:"index" json:"occurred_at"`
}

// TableName 指定表名
func (TelemetryEvent) TableName() string {
	return "telemetry_events"
}
