package service

import (
	"context"
	"testing"
	"time"

	"Muze_Link/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRejectsEmptyBody(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	bob := newTestUser(t, db, "bob", model.RoleIndividual)
	convSvc := NewConversationService(db)
	msgSvc := NewMessageService(db)
	ctx := context.Background()

	d, err := convSvc.StartOrGet(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	for _, body := range []string{"", "   ", "\n\t "} {
		_, err := msgSvc.Send(ctx, alice.ID, d.ConversationID, body)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	var n int64
	require.NoError(t, db.Model(&model.Message{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestSendTrimsBodyAndKeepsRecipientUnread(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	bob := newTestUser(t, db, "bob", model.RoleIndividual)
	convSvc := NewConversationService(db)
	msgSvc := NewMessageService(db)
	ctx := context.Background()

	d, err := convSvc.StartOrGet(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	msg, err := msgSvc.Send(ctx, alice.ID, d.ConversationID, "  hey there  ")
	require.NoError(t, err)
	assert.Equal(t, "hey there", msg.Body)
	assert.True(t, msg.FromMe)
	assert.Equal(t, d.ConversationID, msg.ConversationID)

	// 收件方没有已读游标，必然 unread
	bobList, err := convSvc.List(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.True(t, bobList[0].Unread)
}

func TestSendUnhidesRecipient(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	bob := newTestUser(t, db, "bob", model.RoleIndividual)
	convSvc := NewConversationService(db)
	msgSvc := NewMessageService(db)
	ctx := context.Background()

	d, err := convSvc.StartOrGet(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = convSvc.Delete(ctx, bob.ID, []uint64{d.ConversationID})
	require.NoError(t, err)
	bobList, err := convSvc.List(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, bobList)

	time.Sleep(10 * time.Millisecond)
	_, err = msgSvc.Send(ctx, alice.ID, d.ConversationID, "you there?")
	require.NoError(t, err)

	bobList, err = convSvc.List(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.True(t, bobList[0].Unread)
}

func TestListMessagesAccessChecks(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	bob := newTestUser(t, db, "bob", model.RoleIndividual)
	carol := newTestUser(t, db, "carol", model.RoleIndividual)
	convSvc := NewConversationService(db)
	msgSvc := NewMessageService(db)
	ctx := context.Background()

	d, err := convSvc.StartOrGet(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = msgSvc.List(ctx, alice.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = msgSvc.List(ctx, carol.ID, d.ConversationID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = msgSvc.Send(ctx, carol.ID, d.ConversationID, "let me in")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteMessageSenderOnly(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	bob := newTestUser(t, db, "bob", model.RoleIndividual)
	convSvc := NewConversationService(db)
	msgSvc := NewMessageService(db)
	ctx := context.Background()

	d, err := convSvc.StartOrGet(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	first, err := msgSvc.Send(ctx, alice.ID, d.ConversationID, "first")
	require.NoError(t, err)
	second, err := msgSvc.Send(ctx, alice.ID, d.ConversationID, "second")
	require.NoError(t, err)

	_, err = msgSvc.Delete(ctx, bob.ID, first.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = msgSvc.Delete(ctx, alice.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	deletedID, err := msgSvc.Delete(ctx, alice.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, deletedID)

	detail, err := msgSvc.List(ctx, bob.ID, d.ConversationID)
	require.NoError(t, err)
	require.Len(t, detail.Messages, 1)
	assert.Equal(t, second.ID, detail.Messages[0].ID)
}

func TestUnreadCountsOnlyOtherSide(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	bob := newTestUser(t, db, "bob", model.RoleIndividual)
	convSvc := NewConversationService(db)
	msgSvc := NewMessageService(db)
	ctx := context.Background()

	d, err := convSvc.StartOrGet(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = msgSvc.Send(ctx, bob.ID, d.ConversationID, "one")
	require.NoError(t, err)
	_, err = msgSvc.Send(ctx, bob.ID, d.ConversationID, "two")
	require.NoError(t, err)

	// bob 这侧只有自己发的消息，不算未读
	bobList, err := convSvc.List(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.False(t, bobList[0].Unread)

	detail, err := msgSvc.List(ctx, alice.ID, d.ConversationID)
	require.NoError(t, err)
	assert.Len(t, detail.Messages, 2)

	aliceList, err := convSvc.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, aliceList[0].Unread)
}
