package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/models"
	"github.com/sudharsana-dev/blog-server/internal/repository"
)

// TelemetryService 匿名埋点业务服务。session_id 和 user_id
// 由浏览器生成，服务端只校验格式并落库
type TelemetryService struct {
	telemetry repository.TelemetryRepository
}

// NewTelemetryService 创建埋点服务
func NewTelemetryService(telemetry repository.TelemetryRepository) *TelemetryService {
	return &TelemetryService{telemetry: telemetry}
}

// SessionInput 上报的会话信息
type SessionInput struct {
	SessionID  string `json:"session_id"`
	UserID     string `json:"user_id"`
	EntryPage  string `json:"entry_page"`
	DeviceType string `json:"device_type"`
	Browser    string `json:"browser"`
	OS         string `json:"os"`
}

// EventInput 上报的单个事件
type EventInput struct {
	EventName  string                 `json:"event_name"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt int64                  `json:"occurred_at"`
}

// EventBatchInput 批量上报的事件
type EventBatchInput struct {
	SessionID string       `json:"session_id"`
	UserID    string       `json:"user_id"`
	Events    []EventInput `json:"events"`
}

func validateIdentifier(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if _, err := uuid.Parse(value); err != nil {
		return "", false
	}
	return value, true
}

// RecordSession 记录会话。已存在的会话只刷新活跃时间
func (s *TelemetryService) RecordSession(input SessionInput) error {
	sessionID, ok := validateIdentifier(input.SessionID)
	if !ok {
		return ErrSessionInvalid
	}
	userID, ok := validateIdentifier(input.UserID)
	if !ok {
		return ErrSessionInvalid
	}

	now := time.Now().UTC()
	session := &models.TelemetrySession{
		SessionID:    sessionID,
		UserID:       userID,
		EntryPage:    strings.TrimSpace(input.EntryPage),
		DeviceType:   strings.TrimSpace(input.DeviceType),
		Browser:      strings.TrimSpace(input.Browser),
		OS:           strings.TrimSpace(input.OS),
		StartedAt:    now,
		LastActivity: now,
	}
	return s.telemetry.UpsertSession(session)
}

// RecordEvents 批量记录事件并刷新会话计数。
// 单个事件缺少名称时跳过，不拒绝整批
func (s *TelemetryService) RecordEvents(input EventBatchInput) (int, error) {
	sessionID, ok := validateIdentifier(input.SessionID)
	if !ok {
		return 0, ErrSessionInvalid
	}
	userID, ok := validateIdentifier(input.UserID)
	if !ok {
		return 0, ErrSessionInvalid
	}

	events := make([]models.TelemetryEvent, 0, len(input.Events))
	pageViews := 0
	for _, item := range input.Events {
		name := strings.TrimSpace(item.EventName)
		if name == "" {
			continue
		}
		occurredAt := time.Now().UTC()
		if item.OccurredAt > 0 {
			occurredAt = time.UnixMilli(item.OccurredAt).UTC()
		}
		events = append(events, models.TelemetryEvent{
			SessionID:  sessionID,
			UserID:     userID,
			EventName:  name,
			Data:       models.JSON(item.Data),
			OccurredAt: occurredAt,
		})
		if name == "page_view" {
			pageViews++
		}
	}
	if len(events) == 0 {
		return 0, nil
	}

	if err := s.telemetry.CreateEvents(events); err != nil {
		return 0, err
	}
	if err := s.telemetry.TouchSession(sessionID, pageViews, len(events)); err != nil {
		logger.Warnw("telemetry_touch_session_failed", "session_id", sessionID, "error", err)
	}
	return len(events), nil
}
