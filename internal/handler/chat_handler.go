package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pocketllm/portal/internal/service"
	"github.com/pocketllm/portal/internal/service/chat"
)

// ChatHandler 聊天处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Chat 处理一次聊天请求
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chat.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	resp, err := h.svc.Chat.Chat(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, resp)
}

// CreateSession 创建会话
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req chat.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	session, err := h.svc.Chat.CreateSession(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, session)
}

// GetSession 获取会话及其消息
func (h *ChatHandler) GetSession(c *gin.Context) {
	session, err := h.svc.Chat.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, session)
}

// ListSessions 列出会话
func (h *ChatHandler) ListSessions(c *gin.Context) {
	page, size := getPagination(c)
	userID := c.Query("user_id")
	if userID == "" {
		userID = getUserID(c)
	}

	sessions, err := h.svc.Chat.ListSessions(c.Request.Context(), &chat.ListSessionsRequest{
		UserID: userID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, sessions)
}

// RenameSession 更新会话标题
func (h *ChatHandler) RenameSession(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	session, err := h.svc.Chat.RenameSession(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, session)
}

// DeleteSession 删除会话及其消息
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	if err := h.svc.Chat.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"deleted": true})
}

// ListMessages 列出会话消息
func (h *ChatHandler) ListMessages(c *gin.Context) {
	messages, err := h.svc.Chat.GetMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, messages)
}

// CreateMessage 手工写入一条消息
func (h *ChatHandler) CreateMessage(c *gin.Context) {
	var req struct {
		Role    string `json:"role" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	message, err := h.svc.Chat.CreateMessage(c.Request.Context(), c.Param("id"), req.Role, req.Content)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, message)
}

// GetMessage 获取单条消息
func (h *ChatHandler) GetMessage(c *gin.Context) {
	message, err := h.svc.Chat.GetMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, message)
}

// RateMessage 为消息评分
func (h *ChatHandler) RateMessage(c *gin.Context) {
	var req struct {
		Rating chat.RatingInput `json:"rating"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	rating, err := h.svc.Chat.RateMessage(c.Request.Context(), c.Param("id"), &req.Rating)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"rating": rating})
}

// TogglePin 切换消息置顶状态
func (h *ChatHandler) TogglePin(c *gin.Context) {
	pinned, err := h.svc.Chat.TogglePin(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"pinned": pinned})
}

// SearchMessages 在会话内搜索消息
func (h *ChatHandler) SearchMessages(c *gin.Context) {
	messages, err := h.svc.Chat.SearchMessages(c.Request.Context(), c.Param("id"), c.Query("q"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, messages)
}
