package mysql

import (
	"context"
	"time"

	"Muze_Link/internal/model"

	"gorm.io/gorm"
)

type ConversationRepository struct {
	DB *gorm.DB
}

// ConversationRow 会话列表行：对方资料 + 最近一条消息（可能为空）
type ConversationRow struct {
	ID          uint64
	User1ID     uint64
	User2ID     uint64
	CreatedAt   time.Time
	User1Name   string
	User1Role   string
	User1Avatar string
	User2Name   string
	User2Role   string
	User2Avatar string
	LastBody    *string
	LastAt      *time.Time
}

func (r *ConversationRepository) Create(conv *model.Conversation) error {
	return r.DB.Create(conv).Error
}

// FindByPair 查询前必须先 SortPair 规范化
func (r *ConversationRepository) FindByPair(ctx context.Context, user1ID, user2ID uint64) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.DB.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).
		First(&conv).Error
	return &conv, err
}

func (r *ConversationRepository) FindByID(ctx context.Context, id uint64) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.DB.WithContext(ctx).First(&conv, id).Error
	return &conv, err
}

// ListVisible 本人参与且未隐藏的会话，带最近消息，最新会话在前，
// 没有消息的排在最后（last_at 为 NULL 时 DESC 排序天然靠后）
func (r *ConversationRepository) ListVisible(ctx context.Context, userID uint64) ([]ConversationRow, error) {
	var rows []ConversationRow
	err := r.DB.WithContext(ctx).Raw(`
		SELECT
		  c.id, c.user1_id, c.user2_id, c.created_at,
		  u1.username AS user1_name, u1.role AS user1_role, u1.avatar_path AS user1_avatar,
		  u2.username AS user2_name, u2.role AS user2_role, u2.avatar_path AS user2_avatar,
		  (SELECT m.body FROM messages m
		     WHERE m.conversation_id = c.id
		     ORDER BY m.created_at DESC, m.id DESC LIMIT 1) AS last_body,
		  (SELECT m.created_at FROM messages m
		     WHERE m.conversation_id = c.id
		     ORDER BY m.created_at DESC, m.id DESC LIMIT 1) AS last_at
		FROM conversations c
		JOIN users u1 ON u1.id = c.user1_id
		JOIN users u2 ON u2.id = c.user2_id
		LEFT JOIN conversation_states s
		  ON s.conversation_id = c.id AND s.user_id = ?
		WHERE (c.user1_id = ? OR c.user2_id = ?)
		  AND COALESCE(s.hidden, 0) = 0
		ORDER BY last_at DESC, c.created_at DESC`,
		userID, userID, userID).
		Scan(&rows).Error
	return rows, err
}

// FilterParticipant 过滤出本人参与的会话 id，其余静默丢弃
func (r *ConversationRepository) FilterParticipant(ctx context.Context, ids []uint64, userID uint64) ([]uint64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var allowed []uint64
	err := r.DB.WithContext(ctx).
		Model(&model.Conversation{}).
		Where("id IN ? AND (user1_id = ? OR user2_id = ?)", ids, userID, userID).
		Pluck("id", &allowed).Error
	return allowed, err
}
