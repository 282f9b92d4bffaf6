package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Post 文章记录，来源于 content 目录下的 markdown 文件
type Post struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Tags     []string  `json:"tags"`
	Excerpt  string    `json:"excerpt"`
	Content  string    `json:"content,omitempty"`
	ReadTime int       `json:"read_time,omitempty"`
}

// Index 文章索引视图：去掉正文的文章列表 + 标签计数
type Index struct {
	Posts []Post         `json:"posts"`
	Tags  map[string]int `json:"tags"`
}

// frontMatter markdown 文件头部的 YAML 元数据
type frontMatter struct {
	Slug     string   `yaml:"slug"`
	Title    string   `yaml:"title"`
	Date     string   `yaml:"date"`
	Tags     []string `yaml:"tags"`
	Excerpt  string   `yaml:"excerpt"`
	ReadTime int      `yaml:"readTime"`
}

var frontMatterDelimiter = []byte("---")

// splitFrontMatter 切分文件头部的 `---` 元数据块与正文
func splitFrontMatter(raw []byte) (meta []byte, body []byte) {
	trimmed := bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(trimmed, frontMatterDelimiter) {
		return nil, raw
	}
	rest := trimmed[len(frontMatterDelimiter):]
	rest = bytes.TrimPrefix(rest, []byte("\r"))
	if len(rest) == 0 || rest[0] != '\n' {
		return nil, raw
	}
	rest = rest[1:]

	for _, marker := range []string{"\n---\n", "\n---\r\n"} {
		if idx := bytes.Index(rest, []byte(marker)); idx >= 0 {
			return rest[:idx], rest[idx+len(marker):]
		}
	}
	// 文件以结尾的 --- 收口、没有正文
	if idx := bytes.Index(rest, []byte("\n---")); idx >= 0 && len(bytes.TrimSpace(rest[idx+4:])) == 0 {
		return rest[:idx], nil
	}
	return nil, raw
}

// parsePost 解析单个 markdown 文件为 Post
func parsePost(filename string, raw []byte, excerptLength int) (Post, error) {
	meta, body := splitFrontMatter(raw)

	var fm frontMatter
	if len(meta) > 0 {
		if err := yaml.Unmarshal(meta, &fm); err != nil {
			return Post{}, fmt.Errorf("parse front matter of %s: %w", filename, err)
		}
	}

	slug := strings.TrimSpace(fm.Slug)
	if slug == "" {
		slug = strings.TrimSuffix(filename, ".md")
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = "Untitled"
	}

	date := parseDate(fm.Date)

	content := strings.TrimSpace(string(body))
	excerpt := strings.TrimSpace(fm.Excerpt)
	if excerpt == "" {
		excerpt = deriveExcerpt(content, excerptLength)
	}

	readTime := fm.ReadTime
	if readTime <= 0 {
		readTime = estimateReadTime(content)
	}

	return Post{
		Slug:     slug,
		Title:    title,
		Date:     date,
		Tags:     fm.Tags,
		Excerpt:  excerpt,
		Content:  content,
		ReadTime: readTime,
	}, nil
}

// parseDate 支持日期或完整时间戳，解析失败回退到当前时间
func parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().UTC()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

// deriveExcerpt 未指定摘要时取正文前 N 个字符
func deriveExcerpt(content string, length int) string {
	if length <= 0 {
		length = 160
	}
	runes := []rune(content)
	if len(runes) <= length {
		return content + "..."
	}
	return string(runes[:length]) + "..."
}

const wordsPerMinute = 200

// estimateReadTime 按阅读速度估算分钟数，至少 1 分钟
func estimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := words / wordsPerMinute
	if words%wordsPerMinute != 0 || minutes == 0 {
		minutes++
	}
	return minutes
}
