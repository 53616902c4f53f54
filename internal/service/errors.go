package service

import "errors"

// 统一的业务错误分类，handler 层用 errors.Is 映射到 HTTP 状态码：
// InvalidInput=400 Unauthorized=401 Forbidden=403 NotFound=404
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)
