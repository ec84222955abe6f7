// Package repository 定义数据访问接口
// 接口抽象使依赖注入和单元测试成为可能
package repository

import "github.com/pocketllm/portal/internal/model"

// Store 会话与消息数据访问接口
// 核心层只通过这组操作消费持久层，不假设具体存储引擎
type Store interface {
	// 会话操作
	CreateSession(session *model.Session) error
	GetSessionByID(id string) (*model.Session, error)
	GetSessionWithMessages(id string) (*model.Session, error)
	SessionExists(id string) (bool, error)
	ListSessions(userID string, offset, limit int) ([]*model.Session, error)
	UpdateSession(session *model.Session) error
	DeleteSession(id string) error

	// 消息操作
	CreateMessage(msg *model.Message) error
	GetMessagesBySessionID(sessionID string) ([]*model.Message, error)
	GetMessageByID(messageID string) (*model.Message, error)
	RateMessage(messageID, rating string) error
	SetMessagePinned(messageID string, pinned bool) error
	SearchMessages(sessionID, query string) ([]*model.Message, error)
}

// 确保 ChatRepository 实现了接口
var _ Store = (*ChatRepository)(nil)
