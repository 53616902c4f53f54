package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"Muze_Link/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowToggleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	bob := newTestUser(t, db, "bob", model.RoleBand)
	svc := NewFollowService(db)
	ctx := context.Background()

	following, count, err := svc.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)
	assert.EqualValues(t, 1, count)

	following, count, err = svc.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
	assert.EqualValues(t, 0, count)

	// 两次切换各写一条 outbox 事件
	var events []model.SocialOutbox
	require.NoError(t, db.Order("id ASC").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, "follow", events[0].EventType)
	assert.Equal(t, "unfollow", events[1].EventType)
	assert.Equal(t, alice.ID, events[0].Follower)
	assert.Equal(t, bob.ID, events[0].Followee)
}

func TestFollowToggleValidation(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	svc := NewFollowService(db)
	ctx := context.Background()

	_, _, err := svc.Toggle(ctx, alice.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.Toggle(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.Toggle(ctx, alice.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowLists(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	bob := newTestUser(t, db, "bob", model.RoleBand)
	carol := newTestUser(t, db, "carol", model.RoleIndividual)
	svc := NewFollowService(db)
	ctx := context.Background()

	_, _, err := svc.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, _, err = svc.Toggle(ctx, carol.ID, bob.ID)
	require.NoError(t, err)
	_, _, err = svc.Toggle(ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	followers, err := svc.ListFollowers(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "alice", followers[0].Username)
	assert.Equal(t, "carol", followers[1].Username)

	following, err := svc.ListFollowing(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 2)
	assert.Equal(t, model.DefaultAvatarFor(model.RoleBand), following[0].Avatar)
}

func TestOutboxRelayerDeliversPending(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	bob := newTestUser(t, db, "bob", model.RoleIndividual)
	svc := NewFollowService(db)
	ctx := context.Background()

	_, _, err := svc.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	var mu sync.Mutex
	var sent []string
	relayer := NewOutboxRelayer(db, func(ctx context.Context, ob *model.SocialOutbox) error {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, ob.EventType)
		return nil
	})

	runCtx, cancel := context.WithTimeout(ctx, 1500*time.Millisecond)
	defer cancel()
	relayer.Run(runCtx)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"follow"}, sent)

	var ob model.SocialOutbox
	require.NoError(t, db.First(&ob).Error)
	assert.EqualValues(t, 1, ob.Status)
}
