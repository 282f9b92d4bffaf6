package service

import (
	"net/mail"
	"strings"
	"time"

	"github.com/sudharsana-dev/blog-server/internal/constants"
	"github.com/sudharsana-dev/blog-server/internal/models"
	"github.com/sudharsana-dev/blog-server/internal/repository"
)

// 订阅操作结果
const (
	SubscribeOutcomeSubscribed        = "subscribed"
	SubscribeOutcomeAlreadySubscribed = "already_subscribed"
	SubscribeOutcomeResubscribed      = "resubscribed"
)

// NewsletterService 邮件订阅业务服务
type NewsletterService struct {
	subscribers repository.SubscriberRepository
}

// NewNewsletterService 创建订阅服务
func NewNewsletterService(subscribers repository.SubscriberRepository) *NewsletterService {
	return &NewsletterService{subscribers: subscribers}
}

// normalizeEmail 小写并去除首尾空白，作为唯一性依据
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrEmailInvalid
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrEmailInvalid
	}
	return email, nil
}

// Subscribe 订阅。同一邮箱重复订阅幂等，
// 已退订的邮箱重新订阅时恢复原记录
func (s *NewsletterService) Subscribe(email string) (string, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	existing, err := s.subscribers.GetByEmail(normalized)
	if err != nil {
		return "", err
	}
	if existing != nil {
		if existing.Status == constants.SubscriberStatusActive {
			return SubscribeOutcomeAlreadySubscribed, nil
		}
		if err := s.subscribers.Reactivate(existing.ID); err != nil {
			return "", err
		}
		return SubscribeOutcomeResubscribed, nil
	}

	subscriber := &models.Subscriber{
		Email:        normalized,
		Status:       constants.SubscriberStatusActive,
		SubscribedAt: time.Now().UTC(),
	}
	if err := s.subscribers.Create(subscriber); err != nil {
		return "", err
	}
	return SubscribeOutcomeSubscribed, nil
}

// Unsubscribe 退订。未订阅的邮箱返回 ErrNotFound
func (s *NewsletterService) Unsubscribe(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	existing, err := s.subscribers.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.Status == constants.SubscriberStatusUnsubscribed {
		return nil
	}
	return s.subscribers.Unsubscribe(existing.ID)
}

// CountActive 有效订阅数，故障时降级为 0
func (s *NewsletterService) CountActive() int64 {
	count, err := s.subscribers.CountActive()
	if err != nil {
		return 0
	}
	return count
}
