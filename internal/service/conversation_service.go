package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Muze_Link/internal/model"
	"Muze_Link/internal/repository/mysql"

	"gorm.io/gorm"
)

type ConversationService struct {
	convRepo  *mysql.ConversationRepository
	stateRepo *mysql.ConversationStateRepository
	msgRepo   *mysql.MessageRepository
	userRepo  *mysql.UserRepository
}

func NewConversationService(db *gorm.DB) *ConversationService {
	return &ConversationService{
		convRepo:  &mysql.ConversationRepository{DB: db},
		stateRepo: &mysql.ConversationStateRepository{DB: db},
		msgRepo:   &mysql.MessageRepository{DB: db},
		userRepo:  &mysql.UserRepository{DB: db},
	}
}

// ConversationSummary 会话列表条目
type ConversationSummary struct {
	ID            uint64     `json:"id"`
	OtherUserID   uint64     `json:"other_user_id"`
	OtherUsername string     `json:"other_username"`
	OtherAvatar   string     `json:"other_avatar"`
	LastMessage   string     `json:"last_message"`
	LastCreatedAt *time.Time `json:"last_created_at"`
	Unread        bool       `json:"unread"`
}

// ConversationDetail 打开会话的返回：对方资料 + 可见消息
type ConversationDetail struct {
	ConversationID uint64        `json:"conversation_id"`
	OtherUserID    uint64        `json:"other_user_id"`
	OtherUsername  string        `json:"other_username"`
	Messages       []MessageView `json:"messages"`
}

// StartOrGet 发起会话：规范化 pair 后取已有会话或新建。
// 给双方懒建状态行，只给发起方强制 hidden=false——哪怕之前清空过，
// 主动发起总是让会话对自己可见；对方的可见性不动
func (s *ConversationService) StartOrGet(ctx context.Context, me, otherID uint64) (*ConversationDetail, error) {
	if otherID == 0 {
		return nil, fmt.Errorf("%w: invalid other_user_id", ErrInvalidInput)
	}
	if otherID == me {
		return nil, fmt.Errorf("%w: cannot message yourself", ErrInvalidInput)
	}

	other, err := s.userRepo.FindByID(otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}

	u1, u2 := model.SortPair(me, otherID)
	conv, err := s.convRepo.FindByPair(ctx, u1, u2)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		conv = &model.Conversation{User1ID: u1, User2ID: u2}
		if err := s.convRepo.Create(conv); err != nil {
			return nil, err
		}
	}

	if err := s.stateRepo.Ensure(ctx, conv.ID, otherID); err != nil {
		return nil, err
	}
	if err := s.stateRepo.SetHidden(ctx, conv.ID, me, false); err != nil {
		return nil, err
	}

	st, err := s.stateRepo.Get(ctx, conv.ID, me)
	if err != nil {
		return nil, err
	}
	msgs, err := s.msgRepo.ListVisible(ctx, conv.ID, st.ClearedAt)
	if err != nil {
		return nil, err
	}
	if err := s.stateRepo.UpsertLastRead(ctx, conv.ID, me, time.Now().UTC()); err != nil {
		return nil, err
	}

	return &ConversationDetail{
		ConversationID: conv.ID,
		OtherUserID:    other.ID,
		OtherUsername:  other.Username,
		Messages:       messageViews(msgs, me),
	}, nil
}

// List 未隐藏的会话，最近消息倒序，空会话排最后
func (s *ConversationService) List(ctx context.Context, me uint64) ([]ConversationSummary, error) {
	rows, err := s.convRepo.ListVisible(ctx, me)
	if err != nil {
		return nil, err
	}

	out := make([]ConversationSummary, 0, len(rows))
	for _, r := range rows {
		var otherID uint64
		var otherName, otherRole, otherAvatar string
		if r.User1ID == me {
			otherID, otherName, otherRole, otherAvatar = r.User2ID, r.User2Name, r.User2Role, r.User2Avatar
		} else {
			otherID, otherName, otherRole, otherAvatar = r.User1ID, r.User1Name, r.User1Role, r.User1Avatar
		}

		lastRead, err := s.stateRepo.GetLastRead(ctx, r.ID, me)
		if err != nil {
			return nil, err
		}
		n, err := s.msgRepo.CountFromOther(ctx, r.ID, me, lastRead)
		if err != nil {
			return nil, err
		}

		var lastBody string
		if r.LastBody != nil {
			lastBody = *r.LastBody
		}
		out = append(out, ConversationSummary{
			ID:            r.ID,
			OtherUserID:   otherID,
			OtherUsername: otherName,
			OtherAvatar:   model.AvatarOrDefault(otherAvatar, otherRole),
			LastMessage:   lastBody,
			LastCreatedAt: r.LastAt,
			Unread:        n > 0,
		})
	}
	return out, nil
}

// Delete 只动本人视角：hidden=true + 清空水位线 + 删掉本人已读游标。
// 非本人参与的 id 静默丢弃，消息和对方状态不受影响。返回实际处理数
func (s *ConversationService) Delete(ctx context.Context, me uint64, ids []uint64) (int, error) {
	allowed, err := s.convRepo.FilterParticipant(ctx, ids, me)
	if err != nil {
		return 0, err
	}
	if len(allowed) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	for _, id := range allowed {
		if err := s.stateRepo.HideAndClear(ctx, id, me, now); err != nil {
			return 0, err
		}
	}
	if err := s.stateRepo.DeleteReads(ctx, allowed, me); err != nil {
		return 0, err
	}
	return len(allowed), nil
}
