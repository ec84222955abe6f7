// Package handler HTTP 请求处理
package handler

import (
	"github.com/pocketllm/portal/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Chat  *ChatHandler
	Auth  *AuthHandler
	Admin *AdminHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Chat:  NewChatHandler(svc),
		Auth:  NewAuthHandler(svc),
		Admin: NewAdminHandler(svc),
	}
}
