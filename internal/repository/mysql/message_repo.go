package mysql

import (
	"context"
	"time"

	"Muze_Link/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func (r *MessageRepository) Create(ctx context.Context, msg *model.Message) error {
	return r.DB.WithContext(ctx).Create(msg).Error
}

func (r *MessageRepository) FindByID(ctx context.Context, id uint64) (*model.Message, error) {
	var msg model.Message
	err := r.DB.WithContext(ctx).First(&msg, id).Error
	return &msg, err
}

func (r *MessageRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.Message{}, id).Error
}

// ListVisible 会话内消息，应用本人的清空水位线：
// horizon 为 nil 返回全部，否则只返回 created_at 严格大于 horizon 的
func (r *MessageRepository) ListVisible(ctx context.Context, conversationID uint64, horizon *time.Time) ([]model.Message, error) {
	q := r.DB.WithContext(ctx).Where("conversation_id = ?", conversationID)
	if horizon != nil {
		q = q.Where("created_at > ?", *horizon)
	}
	var list []model.Message
	err := q.Order("created_at ASC, id ASC").Find(&list).Error
	return list, err
}

// CountFromOther 未读计算：对方发的、晚于已读游标的消息数。
// after 为 nil（从未读过）时统计对方的全部消息
func (r *MessageRepository) CountFromOther(ctx context.Context, conversationID, userID uint64, after *time.Time) (int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ? AND sender_id != ?", conversationID, userID)
	if after != nil {
		q = q.Where("created_at > ?", *after)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}
