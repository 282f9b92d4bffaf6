package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sudharsana-dev/blog-server/internal/config"
	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/models"
	"github.com/sudharsana-dev/blog-server/internal/repository"
)

// SummaryService 评论区摘要服务。评论数达到阈值后
// 让模型生成一段讨论概要，展示在评论区顶部
type SummaryService struct {
	comments  repository.CommentRepository
	summaries repository.SummaryRepository
	llm       *OllamaClient

	minCount int
}

// NewSummaryService 创建摘要服务
func NewSummaryService(
	comments repository.CommentRepository,
	summaries repository.SummaryRepository,
	llm *OllamaClient,
	cfg *config.OllamaConfig,
) *SummaryService {
	minCount := 3
	if cfg != nil && cfg.SummaryMinCount > 0 {
		minCount = cfg.SummaryMinCount
	}
	return &SummaryService{
		comments:  comments,
		summaries: summaries,
		llm:       llm,
		minCount:  minCount,
	}
}

// summaryReply 模型返回的摘要结构
type summaryReply struct {
	Summary string `json:"summary"`
}

const summaryPromptTemplate = `You are summarizing the comment section of a blog post.
Write a neutral 2-3 sentence overview of what readers are discussing. Do not quote
commenters by name.

Comments:
%s

Respond with a JSON object only: {"summary": "..."}`

// Get 获取文章的评论摘要，未生成时返回 nil
func (s *SummaryService) Get(postSlug string) *models.CommentSummary {
	summary, err := s.summaries.GetBySlug(postSlug)
	if err != nil {
		logger.Warnw("summary_get_failed", "slug", postSlug, "error", err)
		return nil
	}
	return summary
}

// Refresh 重新生成文章的评论摘要。
// 评论数不足阈值或模型不可用时跳过，已有摘要保持不变
func (s *SummaryService) Refresh(ctx context.Context, postSlug string) error {
	comments, err := s.comments.ListApprovedBySlug(postSlug)
	if err != nil {
		return err
	}
	if len(comments) < s.minCount {
		return nil
	}

	var sb strings.Builder
	for i, comment := range comments {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, strings.ReplaceAll(comment.Content, "\n", " "))
	}

	reply, err := s.llm.Generate(ctx, fmt.Sprintf(summaryPromptTemplate, sb.String()))
	if err != nil {
		logger.Warnw("summary_generate_failed", "slug", postSlug, "error", err)
		return nil
	}
	block, ok := extractJSONBlock(reply)
	if !ok {
		logger.Warnw("summary_reply_unparseable", "slug", postSlug)
		return nil
	}
	var parsed summaryReply
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		logger.Warnw("summary_reply_invalid", "slug", postSlug, "error", err)
		return nil
	}
	text := strings.TrimSpace(parsed.Summary)
	if text == "" {
		return nil
	}

	if err := s.summaries.Upsert(&models.CommentSummary{
		PostSlug:     postSlug,
		Summary:      text,
		CommentCount: len(comments),
	}); err != nil {
		return err
	}
	logger.Infow("summary_refreshed", "slug", postSlug, "comment_count", len(comments))
	return nil
}
