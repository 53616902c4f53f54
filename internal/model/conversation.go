package model

import "time"

// Conversation 两个用户只存一行，user1_id < user2_id
type Conversation struct {
	ID        uint64 `gorm:"primaryKey"`
	User1ID   uint64 `gorm:"not null;index;uniqueIndex:uk_conversation_pair,priority:1"`
	User2ID   uint64 `gorm:"not null;index;uniqueIndex:uk_conversation_pair,priority:2"`
	CreatedAt time.Time
}

// SortPair 会话对规范化，所有查询/插入统一走这里
func SortPair(a, b uint64) (uint64, uint64) {
	if a < b {
		return a, b
	}
	return b, a
}

// Other 返回会话里另一方的 id
func (c *Conversation) Other(userID uint64) uint64 {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// HasParticipant 判断用户是否是会话成员
func (c *Conversation) HasParticipant(userID uint64) bool {
	return c.User1ID == userID || c.User2ID == userID
}

type Message struct {
	ID             uint64    `gorm:"primaryKey"`
	ConversationID uint64    `gorm:"not null;index:idx_conv_time,priority:1"`
	SenderID       uint64    `gorm:"not null;index"`
	Body           string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"index:idx_conv_time,priority:2"`
}

// ConversationRead 每个 (会话, 用户) 一行的已读游标
type ConversationRead struct {
	ConversationID uint64 `gorm:"primaryKey;autoIncrement:false"`
	UserID         uint64 `gorm:"primaryKey;autoIncrement:false"`
	LastReadAt     *time.Time
}

func (ConversationRead) TableName() string { return "conversation_reads" }

// ConversationState 每个 (会话, 用户) 的可见性：hidden + 清空水位线。
// 不存在的行等价于 hidden=false, cleared_at=NULL
type ConversationState struct {
	ConversationID uint64 `gorm:"primaryKey;autoIncrement:false"`
	UserID         uint64 `gorm:"primaryKey;autoIncrement:false"`
	Hidden         bool   `gorm:"not null;default:false"`
	ClearedAt      *time.Time
}

func (ConversationState) TableName() string { return "conversation_states" }
