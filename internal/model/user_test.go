package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Sanitized(t *testing.T) {
	token := "refresh"
	user := &User{UUID: "u1", Username: "alice", PasswordHash: "hash", RefreshToken: &token}

	clean := user.Sanitized()

	assert.Empty(t, clean.PasswordHash)
	assert.Nil(t, clean.RefreshToken)
	assert.Equal(t, "alice", clean.Username)
	assert.Equal(t, "hash", user.PasswordHash, "оригинал не должен меняться")
	assert.Equal(t, "refresh", user.StoredRefreshToken())
	assert.Nil(t, (*User)(nil).Sanitized())
}

func TestUser_JSONHidesSecrets(t *testing.T) {
	token := "refresh"
	raw, err := json.Marshal(&User{UUID: "u1", PasswordHash: "hash", RefreshToken: &token})
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "hash")
	assert.NotContains(t, string(raw), "refresh")
	assert.Contains(t, string(raw), `"id":"u1"`)
}
