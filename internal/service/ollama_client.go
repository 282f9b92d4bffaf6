package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sudharsana-dev/blog-server/internal/config"
)

// OllamaClient Ollama 推理服务客户端，审核、起名和摘要共用
type OllamaClient struct {
	host    string
	model   string
	timeout time.Duration
	http    *http.Client
}

// NewOllamaClient 创建 Ollama 客户端
func NewOllamaClient(cfg *config.OllamaConfig) *OllamaClient {
	host := "http://127.0.0.1:11434"
	model := "llama3.2"
	timeout := 20 * time.Second
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimRight(strings.TrimSpace(cfg.Host), "/")
		}
		if strings.TrimSpace(cfg.Model) != "" {
			model = strings.TrimSpace(cfg.Model)
		}
		if cfg.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
	}
	return &OllamaClient{
		host:    host,
		model:   model,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Generate 调用 /api/generate 并返回模型的完整回复文本
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama generate returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	var parsed ollamaGenerateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	return parsed.Response, nil
}

// extractJSONBlock 从自由文本回复中截取第一个 {...} 块。
// 模型经常在 JSON 前后夹杂解释性文字
func extractJSONBlock(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
