package model

import "time"

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// 消息评分
const (
	RatingUp   = "up"
	RatingDown = "down"
)

// Session 聊天会话
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Messages  []Message `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

// Message 聊天消息，创建后只有 rating 和 pinned 可变
type Message struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"index;size:36" json:"session_id"`
	Role      string    `gorm:"size:20;index" json:"role"` // user, assistant
	Content   string    `gorm:"type:text" json:"content"`
	Rating    string    `gorm:"size:10" json:"rating,omitempty"` // up, down 或空
	Pinned    bool      `gorm:"default:false" json:"pinned"`
	TokenUsed int       `gorm:"default:0" json:"token_used"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (Session) TableName() string {
	return "sessions"
}

func (Message) TableName() string {
	return "messages"
}
