package ledger

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated 会话无效或已过期
// 持久层返回该错误时账本会清空本地状态，调用方应跳转到登录入口
var ErrUnauthenticated = errors.New("会话无效或已过期")

// ValidationError 本地校验失败（不会触发任何远端调用）
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("字段 %s 校验失败: %s", e.Field, e.Message)
}

// LoadError 加载消费记录失败（网络或服务端错误），本地状态未变更
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("加载消费记录失败: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SubmissionError 提交消费记录失败（网络或服务端错误）
// 本地状态未变更，草稿可原样重试
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("提交消费记录失败: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
