package repository

import (
	"errors"

	"github.com/pocketllm/portal/internal/model"
	"gorm.io/gorm"
)

// ChatRepository 会话与消息数据访问
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建聊天仓库
func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateSession 创建会话
func (r *ChatRepository) CreateSession(session *model.Session) error {
	return r.db.Create(session).Error
}

// GetSessionByID 获取会话
func (r *ChatRepository) GetSessionByID(id string) (*model.Session, error) {
	var session model.Session
	err := r.db.Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSessionWithMessages 获取会话及其全部消息
func (r *ChatRepository) GetSessionWithMessages(id string) (*model.Session, error) {
	var session model.Session
	err := r.db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SessionExists 判断会话是否存在
func (r *ChatRepository) SessionExists(id string) (bool, error) {
	var session model.Session
	err := r.db.Select("id").Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListSessions 列出用户会话
func (r *ChatRepository) ListSessions(userID string, offset, limit int) ([]*model.Session, error) {
	var sessions []*model.Session
	query := r.db.Order("created_at DESC").Offset(offset).Limit(limit)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Find(&sessions).Error
	return sessions, err
}

// UpdateSession 更新会话
func (r *ChatRepository) UpdateSession(session *model.Session) error {
	return r.db.Save(session).Error
}

// DeleteSession 删除会话，级联删除其消息
func (r *ChatRepository) DeleteSession(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Message{}, "session_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Session{}, "id = ?", id).Error
	})
}

// CreateMessage 追加消息
func (r *ChatRepository) CreateMessage(msg *model.Message) error {
	return r.db.Create(msg).Error
}

// GetMessagesBySessionID 按创建时间升序获取会话消息
func (r *ChatRepository) GetMessagesBySessionID(sessionID string) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&messages).Error
	return messages, err
}

// GetMessageByID 获取单条消息
func (r *ChatRepository) GetMessageByID(messageID string) (*model.Message, error) {
	var message model.Message
	err := r.db.Where("id = ?", messageID).First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// RateMessage 更新消息评分
func (r *ChatRepository) RateMessage(messageID, rating string) error {
	return r.db.Model(&model.Message{}).Where("id = ?", messageID).Update("rating", rating).Error
}

// SetMessagePinned 更新消息置顶状态
func (r *ChatRepository) SetMessagePinned(messageID string, pinned bool) error {
	return r.db.Model(&model.Message{}).Where("id = ?", messageID).Update("pinned", pinned).Error
}

// SearchMessages 在会话内搜索消息内容
// Postgres 走全文检索，其他方言（测试用 sqlite）降级为 LIKE
func (r *ChatRepository) SearchMessages(sessionID, query string) ([]*model.Message, error) {
	var messages []*model.Message
	q := r.db.Where("session_id = ?", sessionID)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Where("to_tsvector('english', content) @@ plainto_tsquery('english', ?)", query)
	} else {
		q = q.Where("content LIKE ?", "%"+query+"%")
	}
	err := q.Order("created_at ASC").Find(&messages).Error
	return messages, err
}
