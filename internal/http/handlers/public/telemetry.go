package public

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sudharsana-dev/blog-server/internal/http/response"
	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/service"
)

// telemetryRequest 埋点批量上报请求体。session 只在新会话首次上报时携带
type telemetryRequest struct {
	SessionID string                `json:"session_id"`
	UserID    string                `json:"user_id"`
	Session   *telemetrySessionBody `json:"session"`
	Events    []service.EventInput  `json:"events"`
}

type telemetrySessionBody struct {
	EntryPage  string `json:"entry_page"`
	DeviceType string `json:"device_type"`
	Browser    string `json:"browser"`
	OS         string `json:"os"`
}

// CollectTelemetry 接收埋点上报
func (h *Handler) CollectTelemetry(c *gin.Context) {
	var req telemetryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if req.Session != nil {
		err := h.TelemetryService.RecordSession(service.SessionInput{
			SessionID:  req.SessionID,
			UserID:     req.UserID,
			EntryPage:  req.Session.EntryPage,
			DeviceType: req.Session.DeviceType,
			Browser:    req.Session.Browser,
			OS:         req.Session.OS,
		})
		if err != nil {
			if errors.Is(err, service.ErrSessionInvalid) {
				response.BadRequest(c, err.Error())
				return
			}
			logger.Warnw("telemetry_session_failed", "error", err)
		}
	}

	accepted := 0
	if len(req.Events) > 0 {
		var err error
		accepted, err = h.TelemetryService.RecordEvents(service.EventBatchInput{
			SessionID: req.SessionID,
			UserID:    req.UserID,
			Events:    req.Events,
		})
		if err != nil {
			if errors.Is(err, service.ErrSessionInvalid) {
				response.BadRequest(c, err.Error())
				return
			}
			logger.Warnw("telemetry_events_failed", "error", err)
		}
	}
	response.OK(c, gin.H{"accepted": accepted})
}
