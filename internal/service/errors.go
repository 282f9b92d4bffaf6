package service

import "errors"

var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("not found")
	// ErrCommentEmpty 评论内容为空
	ErrCommentEmpty = errors.New("comment cannot be empty")
	// ErrCommentTooLong 评论内容超长
	ErrCommentTooLong = errors.New("comment is too long")
	// ErrEmailInvalid 非法邮箱
	ErrEmailInvalid = errors.New("invalid email address")
	// ErrFeedbackEmpty 反馈内容为空
	ErrFeedbackEmpty = errors.New("feedback message cannot be empty")
	// ErrSessionInvalid 非法的埋点会话
	ErrSessionInvalid = errors.New("invalid telemetry session")
	// ErrNameGenerationFailed 名称生成失败
	ErrNameGenerationFailed = errors.New("name generation failed")
)
