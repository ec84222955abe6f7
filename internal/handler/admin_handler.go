package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pocketllm/portal/internal/service"
)

// AdminHandler 管理端处理器
type AdminHandler struct {
	svc *service.Services
}

// NewAdminHandler 创建管理端处理器
func NewAdminHandler(svc *service.Services) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Stats 运行期统计
func (h *AdminHandler) Stats(c *gin.Context) {
	success(c, h.svc.Chat.GetStats(c.Request.Context()))
}

// ClearCache 清空响应缓存
func (h *AdminHandler) ClearCache(c *gin.Context) {
	if err := h.svc.Chat.ClearCache(c.Request.Context()); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"cleared": true})
}
