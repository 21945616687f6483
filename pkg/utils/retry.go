package utils

import (
	"context"
	"errors"
	"net"
	"os"
)

// IsTimeoutErr 判断超时类失败 这类失败是瞬时的 和确定性的存储错误分开处理
func IsTimeoutErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// RetryRead 幂等读的单次内部重试 只重试超时类失败
// 写路径不走这里 写入重试由调用方整体决定
func RetryRead[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	value, err := fn()
	if err == nil || !IsTimeoutErr(err) || ctx.Err() != nil {
		return value, err
	}
	return fn()
}
