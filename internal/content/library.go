package content

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sudharsana-dev/blog-server/internal/logger"
)

// Library 文章仓库。首次访问时读取 content 目录并缓存，
// 之后全部走内存，Reload 之前不会再碰磁盘
type Library struct {
	dir           string
	excerptLength int

	mu    sync.Mutex
	posts []Post
	index *Index
}

// NewLibrary 创建文章仓库
func NewLibrary(dir string, excerptLength int) *Library {
	return &Library{
		dir:           dir,
		excerptLength: excerptLength,
	}
}

// All 返回全部文章，按日期倒序
func (l *Library) All() ([]Post, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.loadLocked(); err != nil {
		return nil, err
	}
	return l.posts, nil
}

// BySlug 根据 slug 查找文章，未找到返回 nil
func (l *Library) BySlug(slug string) (*Post, error) {
	posts, err := l.All()
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Slug == slug {
			return &posts[i], nil
		}
	}
	return nil, nil
}

// Index 返回索引视图（正文置空的文章列表 + 标签计数）
func (l *Library) Index() (*Index, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.loadLocked(); err != nil {
		return nil, err
	}
	if l.index != nil {
		return l.index, nil
	}

	stripped := make([]Post, len(l.posts))
	tags := make(map[string]int)
	for i, post := range l.posts {
		stripped[i] = post
		stripped[i].Content = ""
		for _, tag := range post.Tags {
			tags[tag]++
		}
	}
	l.index = &Index{Posts: stripped, Tags: tags}
	return l.index, nil
}

// ByTag 返回包含指定标签的文章（正文已置空）
func (l *Library) ByTag(tag string) ([]Post, error) {
	index, err := l.Index()
	if err != nil {
		return nil, err
	}
	matched := make([]Post, 0)
	for _, post := range index.Posts {
		for _, t := range post.Tags {
			if t == tag {
				matched = append(matched, post)
				break
			}
		}
	}
	return matched, nil
}

// Reload 清空缓存，下次访问时重新读取磁盘
func (l *Library) Reload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.posts = nil
	l.index = nil
}

// loadLocked 读取并解析 content 目录，调用方需持有锁
func (l *Library) loadLocked() error {
	if l.posts != nil {
		return nil
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return err
	}

	posts := make([]Post, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			return err
		}
		post, err := parsePost(entry.Name(), raw, l.excerptLength)
		if err != nil {
			// 单个文件损坏不拖垮整个站点
			logger.Warnw("content_post_parse_failed", "file", entry.Name(), "error", err)
			continue
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	l.posts = posts
	return nil
}
