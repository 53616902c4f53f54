package service

import (
	"context"
	"testing"

	"Muze_Link/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowcaseUpdateAndList(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	resolver := &fakeResolver{}
	svc := NewShowcaseService(db, resolver)
	ctx := context.Background()

	require.NoError(t, svc.Update(ctx, alice.ID, nil, []string{"/media/sc_1.png", "/media/sc_2.mp4"}))

	items, err := svc.List(ctx, alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// 删掉一条，对象尽力清理
	require.NoError(t, svc.Update(ctx, alice.ID, []uint64{items[0].ID}, nil))
	assert.Len(t, resolver.deleted, 1)

	items, err = svc.List(ctx, alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestShowcaseUpdateIgnoresForeignItems(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	bob := newTestUser(t, db, "bob", model.RoleIndividual)
	resolver := &fakeResolver{}
	svc := NewShowcaseService(db, resolver)
	ctx := context.Background()

	require.NoError(t, svc.Update(ctx, bob.ID, nil, []string{"/media/sc_bob.png"}))
	bobItems, err := svc.List(ctx, bob.ID, 0)
	require.NoError(t, err)
	require.Len(t, bobItems, 1)

	// 别人的 id 静默丢弃
	require.NoError(t, svc.Update(ctx, alice.ID, []uint64{bobItems[0].ID}, nil))
	assert.Empty(t, resolver.deleted)

	bobItems, err = svc.List(ctx, bob.ID, 0)
	require.NoError(t, err)
	assert.Len(t, bobItems, 1)
}
