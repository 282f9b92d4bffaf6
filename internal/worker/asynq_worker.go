package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/provider"
	"github.com/sudharsana-dev/blog-server/internal/queue"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCommentModerate, c.handleCommentModerate)
	mux.HandleFunc(queue.TaskCommentSummarize, c.handleCommentSummarize)
	mux.HandleFunc(queue.TaskFeedbackNotify, c.handleFeedbackNotify)
}

func (c *Consumer) handleCommentModerate(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_comment_moderate_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CommentModeratePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_comment_moderate_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.CommentID) == "" {
		logger.Debugw("worker_comment_moderate_skip_invalid_payload")
		return nil
	}
	if c.ModerationService == nil {
		logger.Warnw("worker_comment_moderate_skip_service_nil", "comment_id", payload.CommentID)
		return nil
	}
	if err := c.ModerationService.ModerateComment(ctx, payload.CommentID); err != nil {
		logger.Warnw("worker_comment_moderate_failed", "comment_id", payload.CommentID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleCommentSummarize(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_comment_summarize_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CommentSummarizePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_comment_summarize_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.PostSlug) == "" {
		logger.Debugw("worker_comment_summarize_skip_invalid_payload")
		return nil
	}
	if c.SummaryService == nil {
		logger.Warnw("worker_comment_summarize_skip_service_nil", "slug", payload.PostSlug)
		return nil
	}
	if err := c.SummaryService.Refresh(ctx, payload.PostSlug); err != nil {
		logger.Warnw("worker_comment_summarize_failed", "slug", payload.PostSlug, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleFeedbackNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_feedback_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.FeedbackNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_feedback_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.FeedbackID == 0 {
		logger.Debugw("worker_feedback_notify_skip_invalid_payload", "feedback_id", payload.FeedbackID)
		return nil
	}
	if c.FeedbackService == nil {
		logger.Warnw("worker_feedback_notify_skip_service_nil", "feedback_id", payload.FeedbackID)
		return nil
	}
	if err := c.FeedbackService.Notify(ctx, payload.FeedbackID); err != nil {
		logger.Warnw("worker_feedback_notify_failed", "feedback_id", payload.FeedbackID, "error", err)
		return err
	}
	return nil
}
