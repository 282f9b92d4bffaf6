package repository

// CommentListFilter 查询评论列表的过滤条件
type CommentListFilter struct {
	PostSlug string
	Sort     string
	Page     int
	PageSize int
}
