package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sudharsana-dev/blog-server/internal/constants"
	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/repository"
)

// ModerationService 评论审核服务。评论发布即可见，
// 审核在后台进行，判定有害时把状态翻转为 rejected。
// 推理服务不可用或回复无法解析时放行，不影响正常评论
type ModerationService struct {
	comments repository.CommentRepository
	llm      *OllamaClient
}

// NewModerationService 创建审核服务
func NewModerationService(comments repository.CommentRepository, llm *OllamaClient) *ModerationService {
	return &ModerationService{comments: comments, llm: llm}
}

// moderationVerdict 模型返回的审核结论
type moderationVerdict struct {
	IsHarmful bool   `json:"is_harmful"`
	Reason    string `json:"reason"`
}

const moderationPromptTemplate = `You are a comment moderator for a personal tech blog.
Review the comment below and decide whether it is harmful. Harmful means spam,
harassment, hate speech, explicit content, or malicious links. Honest criticism
and negative opinions are NOT harmful.

Comment:
%q

Respond with a JSON object only: {"is_harmful": true|false, "reason": "short explanation"}`

// ModerateComment 审核单条评论
func (s *ModerationService) ModerateComment(ctx context.Context, commentID string) error {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		logger.Warnw("moderation_comment_missing", "comment_id", commentID)
		return nil
	}
	if comment.Status != constants.CommentStatusApproved {
		return nil
	}

	reply, err := s.llm.Generate(ctx, fmt.Sprintf(moderationPromptTemplate, comment.Content))
	if err != nil {
		// 放行：审核失败不拦截评论
		logger.Warnw("moderation_generate_failed", "comment_id", commentID, "error", err)
		return nil
	}

	block, ok := extractJSONBlock(reply)
	if !ok {
		logger.Warnw("moderation_reply_unparseable", "comment_id", commentID)
		return nil
	}
	var verdict moderationVerdict
	if err := json.Unmarshal([]byte(block), &verdict); err != nil {
		logger.Warnw("moderation_verdict_invalid", "comment_id", commentID, "error", err)
		return nil
	}

	if !verdict.IsHarmful {
		logger.Infow("moderation_comment_approved", "comment_id", commentID)
		return nil
	}

	if err := s.comments.UpdateStatus(commentID, constants.CommentStatusRejected); err != nil {
		return err
	}
	logger.Infow("moderation_comment_rejected",
		"comment_id", commentID,
		"reason", verdict.Reason,
	)
	return nil
}
