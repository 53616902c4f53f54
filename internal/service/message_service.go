package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Muze_Link/internal/model"
	"Muze_Link/internal/repository/mysql"

	"gorm.io/gorm"
)

type MessageService struct {
	convRepo  *mysql.ConversationRepository
	stateRepo *mysql.ConversationStateRepository
	msgRepo   *mysql.MessageRepository
	userRepo  *mysql.UserRepository
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{
		convRepo:  &mysql.ConversationRepository{DB: db},
		stateRepo: &mysql.ConversationStateRepository{DB: db},
		msgRepo:   &mysql.MessageRepository{DB: db},
		userRepo:  &mysql.UserRepository{DB: db},
	}
}

// MessageView 消息的对外形态，from_me 以请求者视角计算
type MessageView struct {
	ID             uint64    `json:"id"`
	ConversationID uint64    `json:"conversation_id,omitempty"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
	FromMe         bool      `json:"from_me"`
}

func messageViews(msgs []model.Message, me uint64) []MessageView {
	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageView{
			ID:        m.ID,
			Body:      m.Body,
			CreatedAt: m.CreatedAt,
			FromMe:    m.SenderID == me,
		})
	}
	return out
}

func (s *MessageService) loadConversation(ctx context.Context, me, conversationID uint64) (*model.Conversation, error) {
	conv, err := s.convRepo.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: conversation not found", ErrNotFound)
		}
		return nil, err
	}
	if !conv.HasParticipant(me) {
		return nil, fmt.Errorf("%w: not a participant", ErrForbidden)
	}
	return conv, nil
}

// List 读会话消息：应用本人清空水位线，升序返回，
// 顺带把本人已读游标推到 now——读完立刻 unread=false
func (s *MessageService) List(ctx context.Context, me, conversationID uint64) (*ConversationDetail, error) {
	conv, err := s.loadConversation(ctx, me, conversationID)
	if err != nil {
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

	otherID := conv.Other(me)
	other, err := s.userRepo.FindByID(otherID)
	if err != nil {
		return nil, err
	}

	return &ConversationDetail{
		ConversationID: conv.ID,
		OtherUserID:    otherID,
		OtherUsername:  other.Username,
		Messages:       messageViews(msgs, me),
	}, nil
}

// Send 发消息。副作用只有一个：给对方懒建状态行并强制 hidden=false——
// 哪怕对方清空/隐藏过，新消息总让会话重新出现在对方列表里。
// 双方的已读游标都不动，所以对方那边必然 unread=true
func (s *MessageService) Send(ctx context.Context, me, conversationID uint64, body string) (*MessageView, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidInput)
	}

	conv, err := s.loadConversation(ctx, me, conversationID)
	if err != nil {
		return nil, err
	}

	msg := &model.Message{
		ConversationID: conv.ID,
		SenderID:       me,
		Body:           body,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if err := s.stateRepo.SetHidden(ctx, conv.ID, conv.Other(me), false); err != nil {
		return nil, err
	}

	return &MessageView{
		ID:             msg.ID,
		ConversationID: conv.ID,
		Body:           msg.Body,
		CreatedAt:      msg.CreatedAt,
		FromMe:         true,
	}, nil
}

// Delete 只有发送者本人（且仍是会话成员）能删，单条删除无级联
func (s *MessageService) Delete(ctx context.Context, me, messageID uint64) (uint64, error) {
	msg, err := s.msgRepo.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: message not found", ErrNotFound)
		}
		return 0, err
	}
	if msg.SenderID != me {
		return 0, fmt.Errorf("%w: not the sender", ErrForbidden)
	}

	conv, err := s.convRepo.FindByID(ctx, msg.ConversationID)
	if err != nil || !conv.HasParticipant(me) {
		return 0, fmt.Errorf("%w: not a participant", ErrForbidden)
	}

	if err := s.msgRepo.Delete(ctx, messageID); err != nil {
		return 0, err
	}
	return messageID, nil
}
