package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortPair(t *testing.T) {
	a, b := SortPair(5, 2)
	assert.EqualValues(t, 2, a)
	assert.EqualValues(t, 5, b)

	a, b = SortPair(2, 5)
	assert.EqualValues(t, 2, a)
	assert.EqualValues(t, 5, b)
}

func TestConversationHelpers(t *testing.T) {
	c := &Conversation{User1ID: 2, User2ID: 5}
	assert.EqualValues(t, 5, c.Other(2))
	assert.EqualValues(t, 2, c.Other(5))
	assert.True(t, c.HasParticipant(2))
	assert.True(t, c.HasParticipant(5))
	assert.False(t, c.HasParticipant(9))
}

func TestAvatarOrDefault(t *testing.T) {
	assert.Equal(t, "/media/a.png", AvatarOrDefault("/media/a.png", RoleBand))
	assert.Equal(t, DefaultAvatarFor(RoleBand), AvatarOrDefault("", RoleBand))
	assert.Equal(t, DefaultAvatarFor(RoleIndividual), AvatarOrDefault("", RoleIndividual))
}
