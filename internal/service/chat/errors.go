package chat

import "errors"

// 业务错误，handler 层据此映射 HTTP 状态码
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrInvalidRating   = errors.New("invalid rating value")
	ErrInvalidRole     = errors.New("invalid message role")
)
