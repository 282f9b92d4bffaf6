package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileStore 基于 JSON 文档的轻量存储，单进程小流量场景使用。
// 每个文档整体读出、整体重写，写入先落临时文件再原子替换
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore 创建文件存储，目录不存在时自动创建
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// load 读取文档到 v，文件不存在时保持 v 的零值
func (s *FileStore) load(name string, v interface{}) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// save 整体重写文档
func (s *FileStore) save(name string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// update 锁内执行读-改-写
func (s *FileStore) update(name string, v interface{}, mutate func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(name, v); err != nil {
		return err
	}
	if err := mutate(); err != nil {
		return err
	}
	return s.save(name, v)
}

// view 锁内执行只读访问
func (s *FileStore) view(name string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(name, v)
}
