package mysql

import (
	"context"
	"errors"
	"time"

	"Muze_Link/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationStateRepository struct {
	DB *gorm.DB
}

// Ensure 懒建状态行：不存在则插入默认值 (hidden=false, cleared_at=NULL)，
// 已存在不动。所有触碰状态的调用先走这里
func (r *ConversationStateRepository) Ensure(ctx context.Context, conversationID, userID uint64) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "conversation_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&model.ConversationState{
		ConversationID: conversationID,
		UserID:         userID,
	}).Error
}

// Get 先 Ensure 再读，绝不返回 not found
func (r *ConversationStateRepository) Get(ctx context.Context, conversationID, userID uint64) (*model.ConversationState, error) {
	if err := r.Ensure(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	var st model.ConversationState
	err := r.DB.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&st).Error
	return &st, err
}

func (r *ConversationStateRepository) SetHidden(ctx context.Context, conversationID, userID uint64, hidden bool) error {
	if err := r.Ensure(ctx, conversationID, userID); err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Model(&model.ConversationState{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Update("hidden", hidden).Error
}

// HideAndClear 本人视角的"删除"：隐藏并设置清空水位线，消息本体不动
func (r *ConversationStateRepository) HideAndClear(ctx context.Context, conversationID, userID uint64, at time.Time) error {
	if err := r.Ensure(ctx, conversationID, userID); err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Model(&model.ConversationState{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Updates(map[string]any{"hidden": true, "cleared_at": at}).Error
}

// UpsertLastRead 已读游标：没有则插入，有则覆盖
func (r *ConversationStateRepository) UpsertLastRead(ctx context.Context, conversationID, userID uint64, at time.Time) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "conversation_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_read_at"}),
	}).Create(&model.ConversationRead{
		ConversationID: conversationID,
		UserID:         userID,
		LastReadAt:     &at,
	}).Error
}

// GetLastRead 没有游标行返回 nil
func (r *ConversationStateRepository) GetLastRead(ctx context.Context, conversationID, userID uint64) (*time.Time, error) {
	var read model.ConversationRead
	err := r.DB.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&read).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return read.LastReadAt, nil
}

// DeleteReads 删除本人的已读游标，会话若重新出现未读从头算
func (r *ConversationStateRepository) DeleteReads(ctx context.Context, conversationIDs []uint64, userID uint64) error {
	if len(conversationIDs) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Where("conversation_id IN ? AND user_id = ?", conversationIDs, userID).
		Delete(&model.ConversationRead{}).Error
}
