package public

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sudharsana-dev/blog-server/internal/http/response"
	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/service"
)

// feedbackRequest 提交反馈请求体
type feedbackRequest struct {
	Name         string `json:"name"`
	Message      string `json:"message"`
	FeedbackType string `json:"feedback_type"`
	Rating       int    `json:"rating"`
}

// SubmitFeedback 提交反馈
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	feedback, err := h.FeedbackService.Submit(service.SubmitFeedbackInput{
		Name:         req.Name,
		Message:      req.Message,
		FeedbackType: req.FeedbackType,
		Rating:       req.Rating,
	})
	if err != nil {
		if errors.Is(err, service.ErrFeedbackEmpty) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Errorw("submit_feedback_failed", "error", err)
		response.Internal(c, "failed to submit feedback")
		return
	}
	h.Metrics.Feedback.Inc()
	response.Created(c, gin.H{"id": feedback.ID})
}
