package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sudharsana-dev/blog-server/internal/config"
	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/models"
	"github.com/sudharsana-dev/blog-server/internal/queue"
	"github.com/sudharsana-dev/blog-server/internal/repository"
)

// FeedbackService 读者反馈业务服务
type FeedbackService struct {
	feedback    repository.FeedbackRepository
	queueClient *queue.Client

	gotifyURL   string
	gotifyToken string
	http        *http.Client
}

// NewFeedbackService 创建反馈服务
func NewFeedbackService(feedback repository.FeedbackRepository, queueClient *queue.Client, cfg *config.GotifyConfig) *FeedbackService {
	s := &FeedbackService{
		feedback:    feedback,
		queueClient: queueClient,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
	if cfg != nil {
		s.gotifyURL = strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
		s.gotifyToken = strings.TrimSpace(cfg.Token)
	}
	return s
}

// SubmitFeedbackInput 提交反馈输入
type SubmitFeedbackInput struct {
	Name         string
	Message      string
	FeedbackType string
	Rating       int
}

// Submit 提交反馈并异步推送通知
func (s *FeedbackService) Submit(input SubmitFeedbackInput) (*models.Feedback, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrFeedbackEmpty
	}
	rating := input.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}

	feedback := &models.Feedback{
		Name:         strings.TrimSpace(input.Name),
		Message:      message,
		FeedbackType: strings.TrimSpace(input.FeedbackType),
		Rating:       rating,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.feedback.Create(feedback); err != nil {
		return nil, err
	}

	s.dispatchNotify(feedback.ID)
	return feedback, nil
}

// dispatchNotify 派发通知任务，队列未启用时退化为后台协程
func (s *FeedbackService) dispatchNotify(feedbackID uint) {
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueFeedbackNotify(queue.FeedbackNotifyPayload{FeedbackID: feedbackID}); err != nil {
			logger.Errorw("feedback_notify_enqueue_failed", "feedback_id", feedbackID, "error", err)
		}
		return
	}
	go func() {
		if err := s.Notify(context.Background(), feedbackID); err != nil {
			logger.Warnw("feedback_notify_failed", "feedback_id", feedbackID, "error", err)
		}
	}()
}

// Notify 推送 Gotify 通知。未配置 Gotify 时跳过
func (s *FeedbackService) Notify(ctx context.Context, feedbackID uint) error {
	if s.gotifyURL == "" || s.gotifyToken == "" {
		return nil
	}

	feedback, err := s.feedback.GetByID(feedbackID)
	if err != nil {
		return err
	}
	if feedback == nil {
		return nil
	}

	name := feedback.Name
	if name == "" {
		name = "Anonymous"
	}
	title := "New blog feedback"
	if feedback.FeedbackType != "" {
		title = fmt.Sprintf("New blog feedback: %s", feedback.FeedbackType)
	}
	body := feedback.Message
	if feedback.Rating > 0 {
		body = fmt.Sprintf("%s\n\nRating: %d/5", body, feedback.Rating)
	}
	body = fmt.Sprintf("%s\n\nFrom: %s", body, name)

	form := url.Values{}
	form.Set("title", title)
	form.Set("message", body)
	form.Set("priority", "5")

	endpoint := fmt.Sprintf("%s/message?token=%s", s.gotifyURL, url.QueryEscape(s.gotifyToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("gotify returned status %d", resp.StatusCode)
	}
	logger.Infow("feedback_notified", "feedback_id", feedbackID)
	return nil
}
