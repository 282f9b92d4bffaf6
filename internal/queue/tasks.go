package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/sudharsana-dev/blog-server/internal/constants"
)

const (
	// TaskCommentModerate 评论审核任务
	TaskCommentModerate = constants.TaskCommentModerate
	// TaskCommentSummarize 评论摘要任务
	TaskCommentSummarize = constants.TaskCommentSummarize
	// TaskFeedbackNotify 反馈通知任务
	TaskFeedbackNotify = constants.TaskFeedbackNotify
)

// CommentModeratePayload 评论审核任务载荷
type CommentModeratePayload struct {
	CommentID string `json:"comment_id"`
}

// CommentSummarizePayload 评论摘要任务载荷
type CommentSummarizePayload struct {
	PostSlug string `json:"post_slug"`
}

// FeedbackNotifyPayload 反馈通知任务载荷
type FeedbackNotifyPayload struct {
	FeedbackID uint `json:"feedback_id"`
}

// NewCommentModerateTask 创建评论审核任务
func NewCommentModerateTask(payload CommentModeratePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCommentModerate, body), nil
}

// NewCommentSummarizeTask 创建评论摘要任务
func NewCommentSummarizeTask(payload CommentSummarizePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCommentSummarize, body), nil
}

// NewFeedbackNotifyTask 创建反馈通知任务
func NewFeedbackNotifyTask(payload FeedbackNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFeedbackNotify, body), nil
}
