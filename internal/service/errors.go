package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// 业务错误类别，HTTP 层用 errors.Is 映射状态码：
// NotFound→404 Unauthorized→403 InvalidInput→400 InvalidState→409
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
)

// wrapf 给错误挂上类别，保留上下文信息
func wrapf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, kind)...)
}

// isRecordNotFound 判断 gorm 查询未命中
func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
