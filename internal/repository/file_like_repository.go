package repository

// likesDocument likes.json 的结构：slug -> 点赞客户端集合
type likesDocument map[string]*likeEntry

type likeEntry struct {
	Count int      `json:"count"`
	Users []string `json:"users"`
}

func (e *likeEntry) has(clientID string) bool {
	for _, user := range e.Users {
		if user == clientID {
			return true
		}
	}
	return false
}

// FileLikeRepository 文章点赞的文件存储实现
type FileLikeRepository struct {
	store *FileStore
	name  string
}

// NewFileLikeRepository 创建文件点赞仓库
func NewFileLikeRepository(store *FileStore) *FileLikeRepository {
	return &FileLikeRepository{store: store, name: "likes.json"}
}

// Count 统计文章点赞数
func (r *FileLikeRepository) Count(postSlug string) (int64, error) {
	doc := likesDocument{}
	if err := r.store.view(r.name, &doc); err != nil {
		return 0, err
	}
	entry, ok := doc[postSlug]
	if !ok {
		return 0, nil
	}
	return int64(len(entry.Users)), nil
}

// Has 判断指定客户端是否已点赞
func (r *FileLikeRepository) Has(postSlug, clientID string) (bool, error) {
	doc := likesDocument{}
	if err := r.store.view(r.name, &doc); err != nil {
		return false, err
	}
	entry, ok := doc[postSlug]
	if !ok {
		return false, nil
	}
	return entry.has(clientID), nil
}

// Add 点赞，重复调用不累加
func (r *FileLikeRepository) Add(postSlug, clientID string) error {
	doc := likesDocument{}
	return r.store.update(r.name, &doc, func() error {
		entry, ok := doc[postSlug]
		if !ok {
			entry = &likeEntry{Users: []string{}}
			doc[postSlug] = entry
		}
		if entry.has(clientID) {
			return nil
		}
		entry.Users = append(entry.Users, clientID)
		entry.Count = len(entry.Users)
		return nil
	})
}

// Remove 取消点赞，记录不存在时静默成功
func (r *FileLikeRepository) Remove(postSlug, clientID string) error {
	doc := likesDocument{}
	return r.store.update(r.name, &doc, func() error {
		entry, ok := doc[postSlug]
		if !ok {
			return nil
		}
		users := entry.Users[:0]
		for _, user := range entry.Users {
			if user != clientID {
				users = append(users, user)
			}
		}
		entry.Users = users
		entry.Count = len(users)
		return nil
	})
}

// commentLikesDocument comment_likes.json 的结构：评论 ID -> 点赞客户端集合
type commentLikesDocument map[string]*likeEntry

// FileCommentLikeRepository 评论点赞的文件存储实现
type FileCommentLikeRepository struct {
	store *FileStore
	name  string
}

// NewFileCommentLikeRepository 创建文件评论点赞仓库
func NewFileCommentLikeRepository(store *FileStore) *FileCommentLikeRepository {
	return &FileCommentLikeRepository{store: store, name: "comment_likes.json"}
}

// Count 统计评论点赞数
func (r *FileCommentLikeRepository) Count(commentID string) (int64, error) {
	doc := commentLikesDocument{}
	if err := r.store.view(r.name, &doc); err != nil {
		return 0, err
	}
	entry, ok := doc[commentID]
	if !ok {
		return 0, nil
	}
	return int64(len(entry.Users)), nil
}

// Has 判断指定客户端是否已点赞该评论
func (r *FileCommentLikeRepository) Has(commentID, clientID string) (bool, error) {
	doc := commentLikesDocument{}
	if err := r.store.view(r.name, &doc); err != nil {
		return false, err
	}
	entry, ok := doc[commentID]
	if !ok {
		return false, nil
	}
	return entry.has(clientID), nil
}

// Add 点赞评论，重复调用不累加
func (r *FileCommentLikeRepository) Add(commentID, clientID string) error {
	doc := commentLikesDocument{}
	return r.store.update(r.name, &doc, func() error {
		entry, ok := doc[commentID]
		if !ok {
			entry = &likeEntry{Users: []string{}}
			doc[commentID] = entry
		}
		if entry.has(clientID) {
			return nil
		}
		entry.Users = append(entry.Users, clientID)
		entry.Count = len(entry.Users)
		return nil
	})
}

// Remove 取消评论点赞
func (r *FileCommentLikeRepository) Remove(commentID, clientID string) error {
	doc := commentLikesDocument{}
	return r.store.update(r.name, &doc, func() error {
		entry, ok := doc[commentID]
		if !ok {
			return nil
		}
		users := entry.Users[:0]
		for _, user := range entry.Users {
			if user != clientID {
				users = append(users, user)
			}
		}
		entry.Users = users
		entry.Count = len(users)
		return nil
	})
}

// CountByComments 批量统计多条评论的点赞数
func (r *FileCommentLikeRepository) CountByComments(commentIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(commentIDs))
	doc := commentLikesDocument{}
	if err := r.store.view(r.name, &doc); err != nil {
		return nil, err
	}
	for _, id := range commentIDs {
		if entry, ok := doc[id]; ok {
			counts[id] = int64(len(entry.Users))
		}
	}
	return counts, nil
}
