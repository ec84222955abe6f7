// Package router HTTP 路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pocketllm/portal/internal/handler"
	"github.com/pocketllm/portal/internal/middleware"
	"github.com/pocketllm/portal/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.AuthMiddleware(svc))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus 指标
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		svc.Metrics.Registry(),
		promhttp.HandlerOpts{},
	)))

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Auth 认证
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/refresh", h.Auth.Refresh)
			authGroup.POST("/logout", h.Auth.Logout)
			authGroup.GET("/me", h.Auth.Me)
			authGroup.POST("/password", h.Auth.ChangePassword)
		}

		// Chat 聊天
		v1.POST("/chat", h.Chat.Chat)

		// Session 会话
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", h.Chat.CreateSession)
			sessions.GET("", h.Chat.ListSessions)
			sessions.GET("/:id", h.Chat.GetSession)
			sessions.PUT("/:id", h.Chat.RenameSession)
			sessions.DELETE("/:id", h.Chat.DeleteSession)
			sessions.GET("/:id/messages", h.Chat.ListMessages)
			sessions.POST("/:id/messages", h.Chat.CreateMessage)
			sessions.GET("/:id/search", h.Chat.SearchMessages)
		}

		// Message 消息
		messages := v1.Group("/messages")
		{
			messages.GET("/:id", h.Chat.GetMessage)
			messages.POST("/:id/rate", h.Chat.RateMessage)
			messages.POST("/:id/pin", h.Chat.TogglePin)
		}

		// Admin 管理端，仅限 admin 角色
		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAdmin(svc))
		{
			admin.GET("/stats", h.Admin.Stats)
			admin.POST("/cache/clear", h.Admin.ClearCache)
		}
	}

	return r
}
