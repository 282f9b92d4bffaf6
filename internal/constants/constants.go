package constants

// 评论状态
const (
	CommentStatusApproved = "approved"
	CommentStatusPending  = "pending"
	CommentStatusRejected = "rejected"
)

// 评论排序方式
const (
	CommentSortRecent    = "recent"
	CommentSortOldest    = "oldest"
	CommentSortMostLiked = "most_liked"
)

// 订阅者状态
const (
	SubscriberStatusActive       = "active"
	SubscriberStatusUnsubscribed = "unsubscribed"
)

// 存储后端
const (
	StorageBackendDatabase = "database"
	StorageBackendFile     = "file"
)

// 队列名称
const (
	QueueDefault = "default"
)

// 异步任务类型
const (
	TaskCommentModerate  = "comment:moderate"
	TaskCommentSummarize = "comment:summarize"
	TaskFeedbackNotify   = "feedback:notify"
)

// AnonymousDisplayName 未填写昵称时的默认展示名
const AnonymousDisplayName = "Anonymous"
