package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/sudharsana-dev/blog-server/internal/logger"
)

// NameService 匿名昵称生成服务。昵称由模型生成并校验格式，
// 不合格式或模型不可用时直接报错，由前端自行兜底
type NameService struct {
	llm *OllamaClient
}

// NewNameService 创建昵称服务
func NewNameService(llm *OllamaClient) *NameService {
	return &NameService{llm: llm}
}

// namePattern 昵称格式：形容词-动物-5位数字
var namePattern = regexp.MustCompile(`^[A-Za-z]+-[A-Za-z]+-[0-9]{5}$`)

const namePrompt = `Generate a single fun anonymous username in the exact format
Adjective-Animal-12345 (a capitalized adjective, a capitalized animal, and 5 random digits,
joined by hyphens). Reply with the username only, nothing else.`

// Generate 生成一个匿名昵称
func (s *NameService) Generate(ctx context.Context) (string, error) {
	if s.llm == nil {
		return "", ErrNameGenerationFailed
	}
	reply, err := s.llm.Generate(ctx, namePrompt)
	if err != nil {
		logger.Warnw("name_generate_failed", "error", err)
		return "", ErrNameGenerationFailed
	}
	candidate := strings.TrimSpace(reply)
	candidate = strings.Trim(candidate, "\"'`")
	if !namePattern.MatchString(candidate) {
		logger.Debugw("name_reply_rejected", "candidate", candidate)
		return "", ErrNameGenerationFailed
	}
	return candidate, nil
}
