package service

import (
	"context"
	"testing"

	"Muze_Link/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCountsAndFollowing(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	bob := newTestUser(t, db, "bob", model.RoleBand)
	resolver := &fakeResolver{}
	userSvc := NewUserService(db, nil, resolver)
	followSvc := NewFollowService(db)
	ctx := context.Background()

	_, _, err := followSvc.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	view, err := userSvc.Profile(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", view.Username)
	assert.Equal(t, model.RoleBand, view.Role)
	assert.EqualValues(t, 1, view.FollowerCount)
	assert.EqualValues(t, 0, view.FollowingCount)
	assert.True(t, view.IsFollowing)
	assert.Equal(t, model.DefaultAvatarFor(model.RoleBand), view.Avatar)

	own, err := userSvc.Profile(ctx, bob.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, own.IsFollowing)

	_, err = userSvc.Profile(ctx, alice.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfileUsernameChecks(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	newTestUser(t, db, "bob", model.RoleIndividual)
	resolver := &fakeResolver{}
	svc := NewUserService(db, nil, resolver)
	ctx := context.Background()

	err := svc.UpdateProfile(ctx, alice.ID, "", "bio", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.UpdateProfile(ctx, alice.ID, "bob", "bio", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, svc.UpdateProfile(ctx, alice.ID, "alice2", "new bio", ""))

	var u model.User
	require.NoError(t, db.First(&u, alice.ID).Error)
	assert.Equal(t, "alice2", u.Username)
	assert.Equal(t, "new bio", u.Bio)
}

func TestUpdateProfileReplacesAvatar(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	resolver := &fakeResolver{}
	svc := NewUserService(db, nil, resolver)
	ctx := context.Background()

	require.NoError(t, svc.UpdateProfile(ctx, alice.ID, "alice", "", "/media/avatar_v1.png"))
	assert.Empty(t, resolver.deleted)

	require.NoError(t, svc.UpdateProfile(ctx, alice.ID, "alice", "", "/media/avatar_v2.png"))
	assert.Equal(t, []string{"/media/avatar_v1.png"}, resolver.deleted)

	var u model.User
	require.NoError(t, db.First(&u, alice.ID).Error)
	assert.Equal(t, "/media/avatar_v2.png", u.AvatarPath)
}

func TestSearchExcludesSelf(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	newTestUser(t, db, "alicia", model.RoleIndividual)
	newTestUser(t, db, "bob", model.RoleIndividual)
	resolver := &fakeResolver{}
	svc := NewUserService(db, nil, resolver)
	ctx := context.Background()

	empty, err := svc.Search(ctx, alice.ID, "")
	require.NoError(t, err)
	assert.Empty(t, empty)

	rows, err := svc.Search(ctx, alice.ID, "ali")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alicia", rows[0].Username)
}

func TestDeleteAccountCascades(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice", model.RoleIndividual)
	bob := newTestUser(t, db, "bob", model.RoleIndividual)
	resolver := &fakeResolver{}
	userSvc := NewUserService(db, nil, resolver)
	followSvc := NewFollowService(db)
	postSvc := NewPostService(db, resolver)
	convSvc := NewConversationService(db)
	msgSvc := NewMessageService(db)
	ctx := context.Background()

	_, _, err := followSvc.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = postSvc.Create(ctx, alice.ID, PostInput{Caption: "mine", MediaPath: "/media/post_x.png"})
	require.NoError(t, err)
	d, err := convSvc.StartOrGet(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = msgSvc.Send(ctx, alice.ID, d.ConversationID, "hello")
	require.NoError(t, err)

	err = userSvc.DeleteAccount(ctx, alice.ID, "wrong")
	assert.ErrorIs(t, err, ErrForbidden)

	err = userSvc.DeleteAccount(ctx, alice.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, userSvc.DeleteAccount(ctx, alice.ID, testPassword))

	var users, follows, posts, convs, msgs, states int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&model.Follow{}).Count(&follows).Error)
	require.NoError(t, db.Model(&model.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&model.Conversation{}).Count(&convs).Error)
	require.NoError(t, db.Model(&model.Message{}).Count(&msgs).Error)
	require.NoError(t, db.Model(&model.ConversationState{}).Count(&states).Error)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 0, follows)
	assert.EqualValues(t, 0, posts)
	assert.EqualValues(t, 0, convs)
	assert.EqualValues(t, 0, msgs)
	assert.EqualValues(t, 0, states)

	assert.Contains(t, resolver.deleted, "/media/post_x.png")
}
