package mysql

import (
	"context"
	"encoding/json"
	"time"

	"Muze_Link/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository struct {
	DB *gorm.DB
}

type OutboxRepository struct {
	DB *gorm.DB
}

// ProfileRow 关注/粉丝列表里的用户摘要
type ProfileRow struct {
	ID         uint64
	Username   string
	Role       string
	AvatarPath string
}

// Toggle 已关注则取关、未关注则关注，outbox 事件同事务写入。
// 返回切换后的状态（true=已关注）。
func (r *FollowRepository) Toggle(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	var following bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&model.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			following = false
			return r.insertOutbox(tx, "unfollow", followerID, followeeID)
		}
		// 唯一 (follower_id, followee_id)，并发重复插入幂等
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followee_id"}},
			DoNothing: true,
		}).Create(&model.Follow{FollowerID: followerID, FolloweeID: followeeID}).Error; err != nil {
			return err
		}
		following = true
		return r.insertOutbox(tx, "follow", followerID, followeeID)
	})
	return following, err
}

// IsFollowing 判断是否关注
func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("followee_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).Count(&n).Error
	return n, err
}

// ListFollowers 粉丝列表，按用户名排序
func (r *FollowRepository) ListFollowers(ctx context.Context, userID uint64) ([]ProfileRow, error) {
	var rows []ProfileRow
	err := r.DB.WithContext(ctx).
		Table("follows f").
		Select("u.id, u.username, u.role, u.avatar_path").
		Joins("JOIN users u ON u.id = f.follower_id").
		Where("f.followee_id = ?", userID).
		Order("u.username ASC").
		Scan(&rows).Error
	return rows, err
}

// ListFollowing 关注列表，按用户名排序
func (r *FollowRepository) ListFollowing(ctx context.Context, userID uint64) ([]ProfileRow, error) {
	var rows []ProfileRow
	err := r.DB.WithContext(ctx).
		Table("follows f").
		Select("u.id, u.username, u.role, u.avatar_path").
		Joins("JOIN users u ON u.id = f.followee_id").
		Where("f.follower_id = ?", userID).
		Order("u.username ASC").
		Scan(&rows).Error
	return rows, err
}

// 插入outbox事件表
func (r *FollowRepository) insertOutbox(tx *gorm.DB, event string, follower, followee uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"follower":   follower,
		"followee":   followee,
	})
	ob := &model.SocialOutbox{
		EventType: event,
		Follower:  follower,
		Followee:  followee,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}

// List outbox查询
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.SocialOutbox, error) {
	var list []model.SocialOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate outbox记录消息失败重试
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.SocialOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate outbox成功记录消息更新
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.SocialOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}
