package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Muze_Link/internal/model"
	"Muze_Link/internal/pkg"
	"Muze_Link/internal/repository/mysql"

	"gorm.io/gorm"
)

type FollowService struct {
	repo     *mysql.FollowRepository
	userRepo *mysql.UserRepository
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		repo:     &mysql.FollowRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
	}
}

// Toggle 已关注则取关、未关注则关注。
// 返回切换后的状态和对方当前粉丝数
func (s *FollowService) Toggle(ctx context.Context, me, targetID uint64) (bool, int64, error) {
	if targetID == 0 {
		return false, 0, fmt.Errorf("%w: invalid target id", ErrInvalidInput)
	}
	if targetID == me {
		return false, 0, fmt.Errorf("%w: cannot follow yourself", ErrInvalidInput)
	}
	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return false, 0, err
	}

	following, err := s.repo.Toggle(ctx, me, targetID)
	if err != nil {
		return false, 0, err
	}
	count, err := s.repo.CountFollowers(ctx, targetID)
	if err != nil {
		return false, 0, err
	}
	return following, count, nil
}

// ListFollowers 粉丝列表，头像按角色回退
func (s *FollowService) ListFollowers(ctx context.Context, userID uint64) ([]UserSummary, error) {
	rows, err := s.repo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(rows), nil
}

// ListFollowing 关注列表
func (s *FollowService) ListFollowing(ctx context.Context, userID uint64) ([]UserSummary, error) {
	rows, err := s.repo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(rows), nil
}

func summarize(rows []mysql.ProfileRow) []UserSummary {
	out := make([]UserSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, UserSummary{
			ID:       r.ID,
			Username: r.Username,
			Role:     r.Role,
			Avatar:   model.AvatarOrDefault(r.AvatarPath, r.Role),
		})
	}
	return out
}

type Sender func(ctx context.Context, ob *model.SocialOutbox) error

// OutboxRelayer 把 social_outbox 里 pending 的关注事件批量投递出去
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

// Run outbox启动器
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

// 从数据库读取事件异步交给kafka传递
func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		pkg.Log.Warnf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender 事件以 follower id 为 key 投递，同一用户的事件保序
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.SocialOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.Follower), []byte(ob.Payload))
	}
}

// LogSender 未配置 kafka 时的占位 sender
func LogSender(ctx context.Context, ob *model.SocialOutbox) error {
	pkg.Log.Infof("OUTBOX SEND type=%s follower=%d followee=%d payload=%s", ob.EventType, ob.Follower, ob.Followee, ob.Payload)
	return nil
}
