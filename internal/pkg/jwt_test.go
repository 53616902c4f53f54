package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseAccess(t *testing.T) {
	pair, err := GeneratePair(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)

	// refresh token 不能当 access 用
	_, err = ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	pair, err := GeneratePair(7)
	require.NoError(t, err)

	renewed, err := Refresh(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := ParseAccess(renewed.AccessToken)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)

	_, err = Refresh("not-a-token")
	assert.Error(t, err)
}
