package public

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sudharsana-dev/blog-server/internal/http/response"
	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/service"
)

// newsletterRequest 订阅请求体
type newsletterRequest struct {
	Email string `json:"email"`
}

// Subscribe 订阅邮件
func (h *Handler) Subscribe(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	outcome, err := h.NewsletterService.Subscribe(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrEmailInvalid) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Errorw("newsletter_subscribe_failed", "error", err)
		response.Internal(c, "failed to subscribe")
		return
	}
	if outcome == service.SubscribeOutcomeSubscribed {
		h.Metrics.NewsletterSignups.Inc()
	}
	response.OK(c, gin.H{"status": outcome})
}

// Unsubscribe 退订邮件
func (h *Handler) Unsubscribe(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.NewsletterService.Unsubscribe(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailInvalid):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(c, "email is not subscribed")
		default:
			logger.Errorw("newsletter_unsubscribe_failed", "error", err)
			response.Internal(c, "failed to unsubscribe")
		}
		return
	}
	response.OK(c, gin.H{"status": "unsubscribed"})
}
