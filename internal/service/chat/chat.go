// Package chat 实现聊天编排：会话校验、缓存查询、生成回退、双向持久化
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pocketllm/portal/internal/cache"
	"github.com/pocketllm/portal/internal/llm"
	"github.com/pocketllm/portal/internal/metrics"
	"github.com/pocketllm/portal/internal/model"
	"github.com/pocketllm/portal/internal/repository"
)

// Service 聊天服务
type Service struct {
	store   repository.Store
	cache   *cache.ResponseCache
	gateway *llm.Gateway
	metrics *metrics.Metrics
}

// NewService 创建聊天服务
func NewService(store repository.Store, respCache *cache.ResponseCache, gateway *llm.Gateway, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		cache:   respCache,
		gateway: gateway,
		metrics: m,
	}
}

// ChatRequest 聊天请求
type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Prompt    string `json:"prompt" binding:"required"`
}

// ChatResponse 聊天响应
type ChatResponse struct {
	UserMessageID      string `json:"user_message_id"`
	AssistantMessageID string `json:"assistant_message_id"`
	Content            string `json:"content"`
	Cached             bool   `json:"cached"`
}

// Chat 处理一次聊天请求
// 命中缓存时仍写入完整的 user/assistant 消息对，保证历史不依赖缓存状态；
// 未命中时先持久化再写缓存，崩溃最多造成一次多余的未命中
func (s *Service) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	start := time.Now()

	exists, err := s.store.SessionExists(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !exists {
		return nil, ErrSessionNotFound
	}

	if content, ok := s.cache.Get(ctx, req.SessionID, req.Prompt); ok {
		userMsg, assistantMsg, err := s.persistExchange(req.SessionID, req.Prompt, content, 0)
		if err != nil {
			return nil, err
		}

		s.metrics.RecordHit(0, time.Since(start))
		return &ChatResponse{
			UserMessageID:      userMsg.ID,
			AssistantMessageID: assistantMsg.ID,
			Content:            content,
			Cached:             true,
		}, nil
	}

	history, err := s.store.GetMessagesBySessionID(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	msgs := make([]llm.Message, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Content})
	}

	// 生成失败不是硬错误，网关返回诊断文本
	result := s.gateway.Generate(ctx, msgs, req.Prompt)

	userMsg, assistantMsg, err := s.persistExchange(req.SessionID, req.Prompt, result.Content, result.TokensUsed)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, req.SessionID, req.Prompt, result.Content, 0); err != nil {
		log.Printf("Warning: failed to cache response: %v", err)
	}

	s.metrics.RecordMiss(result.TokensUsed, time.Since(start))
	return &ChatResponse{
		UserMessageID:      userMsg.ID,
		AssistantMessageID: assistantMsg.ID,
		Content:            result.Content,
		Cached:             false,
	}, nil
}

// persistExchange 按 user、assistant 的顺序持久化一轮对话
func (s *Service) persistExchange(sessionID, prompt, reply string, tokens int) (*model.Message, *model.Message, error) {
	userMsg := &model.Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      model.RoleUser,
		Content:   prompt,
	}
	if err := s.store.CreateMessage(userMsg); err != nil {
		return nil, nil, fmt.Errorf("failed to save user message: %w", err)
	}

	assistantMsg := &model.Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      model.RoleAssistant,
		Content:   reply,
		TokenUsed: tokens,
	}
	if err := s.store.CreateMessage(assistantMsg); err != nil {
		return nil, nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	return userMsg, assistantMsg, nil
}

// CreateSessionRequest 创建会话请求
type CreateSessionRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Title  string `json:"title"`
}

// CreateSession 创建会话
func (s *Service) CreateSession(ctx context.Context, req *CreateSessionRequest) (*model.Session, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "New Session"
	}

	session := &model.Session{
		ID:     uuid.New().String(),
		UserID: req.UserID,
		Title:  title,
	}

	if err := s.store.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// GetSession 获取会话及其消息
func (s *Service) GetSession(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.store.GetSessionWithMessages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// ListSessionsRequest 列出会话请求
type ListSessionsRequest struct {
	UserID string
	Page   int
	Size   int
}

// ListSessions 列出用户会话
func (s *Service) ListSessions(ctx context.Context, req *ListSessionsRequest) ([]*model.Session, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Size <= 0 || req.Size > 100 {
		req.Size = 20
	}

	offset := (req.Page - 1) * req.Size

	sessions, err := s.store.ListSessions(req.UserID, offset, req.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// RenameSession 更新会话标题
func (s *Service) RenameSession(ctx context.Context, id, title string) (*model.Session, error) {
	session, err := s.store.GetSessionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if title = strings.TrimSpace(title); title != "" {
		session.Title = title
	}

	if err := s.store.UpdateSession(session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return session, nil
}

// DeleteSession 删除会话及其全部消息
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	exists, err := s.store.SessionExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSessionNotFound
	}

	if err := s.store.DeleteSession(id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// GetMessages 按时间升序获取会话消息
func (s *Service) GetMessages(ctx context.Context, sessionID string) ([]*model.Message, error) {
	exists, err := s.store.SessionExists(sessionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSessionNotFound
	}
	return s.store.GetMessagesBySessionID(sessionID)
}

// CreateMessage 在会话下手工追加一条消息
func (s *Service) CreateMessage(ctx context.Context, sessionID, role, content string) (*model.Message, error) {
	if role != model.RoleUser && role != model.RoleAssistant {
		return nil, ErrInvalidRole
	}

	exists, err := s.store.SessionExists(sessionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSessionNotFound
	}

	message := &model.Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}
	if err := s.store.CreateMessage(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return message, nil
}

// GetMessage 获取单条消息
func (s *Service) GetMessage(ctx context.Context, messageID string) (*model.Message, error) {
	message, err := s.store.GetMessageByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}

// RateMessage 给消息评分，输入先归一化再落库
func (s *Service) RateMessage(ctx context.Context, messageID string, input *RatingInput) (string, error) {
	rating, err := input.Normalize()
	if err != nil {
		return "", err
	}

	if _, err := s.GetMessage(ctx, messageID); err != nil {
		return "", err
	}

	if err := s.store.RateMessage(messageID, rating); err != nil {
		return "", fmt.Errorf("failed to rate message: %w", err)
	}
	return rating, nil
}

// TogglePin 翻转消息置顶状态，返回新状态
func (s *Service) TogglePin(ctx context.Context, messageID string) (bool, error) {
	message, err := s.GetMessage(ctx, messageID)
	if err != nil {
		return false, err
	}

	pinned := !message.Pinned
	if err := s.store.SetMessagePinned(messageID, pinned); err != nil {
		return false, fmt.Errorf("failed to toggle pin: %w", err)
	}
	return pinned, nil
}

// SearchMessages 会话内全文搜索，空查询返回空结果
func (s *Service) SearchMessages(ctx context.Context, sessionID, query string) ([]*model.Message, error) {
	if strings.TrimSpace(query) == "" {
		return []*model.Message{}, nil
	}

	exists, err := s.store.SessionExists(sessionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSessionNotFound
	}

	return s.store.SearchMessages(sessionID, query)
}

// Stats 系统统计
type Stats struct {
	metrics.Snapshot
	BackendLoaded     bool   `json:"generation_backend_loaded"`
	BackendIdentifier string `json:"backend_identifier"`
}

// GetStats 返回进程统计与后端信息
func (s *Service) GetStats(ctx context.Context) *Stats {
	return &Stats{
		Snapshot:          s.metrics.Snapshot(),
		BackendLoaded:     s.gateway.Loaded(),
		BackendIdentifier: s.gateway.Backend(),
	}
}

// ClearCache 清空响应缓存，不触碰数据库中的历史
func (s *Service) ClearCache(ctx context.Context) error {
	return s.cache.ClearAll(ctx)
}
