package repository

import (
	"account-service/internal/apperror"
	"account-service/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository_CreateAndFind(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, &model.User{UUID: "u-1", Username: "Alice", Email: "Alice@X.com", FullName: " Alice "})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "alice@x.com", created.Email)
	assert.Equal(t, "Alice", created.FullName)
	assert.False(t, created.CreatedAt.IsZero())

	byEmail, err := repo.FindByUsernameOrEmail(ctx, "", "ALICE@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", byEmail.UUID)

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "alice", "")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByUUID(ctx, "ghost")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMemoryUserRepository_Conflicts(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, &model.User{UUID: "u-1", Username: "alice", Email: "alice@x.com"})
	require.NoError(t, err)
	_, err = repo.CreateUser(ctx, &model.User{UUID: "u-2", Username: "bob", Email: "bob@x.com"})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, &model.User{UUID: "u-3", Username: "ALICE", Email: "other@x.com"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = repo.UpdateAccount(ctx, "u-2", "", "alice@x.com")
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestMemoryUserRepository_FindPrefersUsername(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, &model.User{UUID: "u-1", Username: "alice", Email: "alice@x.com"})
	require.NoError(t, err)
	_, err = repo.CreateUser(ctx, &model.User{UUID: "u-2", Username: "bob", Email: "bob@x.com"})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		user, err := repo.FindByUsernameOrEmail(ctx, "bob", "alice@x.com")
		require.NoError(t, err)
		assert.Equal(t, "u-2", user.UUID)
	}
}

func TestMemoryUserRepository_RefreshToken(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, &model.User{UUID: "u-1", Username: "alice", Email: "alice@x.com"})
	require.NoError(t, err)

	require.NoError(t, repo.SetRefreshToken(ctx, "u-1", "token"))
	user, err := repo.FindByUUID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "token", user.StoredRefreshToken())

	*user.RefreshToken = "tampered"
	again, err := repo.FindByUUID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "token", again.StoredRefreshToken(), "возвращается копия")

	require.NoError(t, repo.ClearRefreshToken(ctx, "u-1"))
	require.NoError(t, repo.ClearRefreshToken(ctx, "u-1"))
	require.NoError(t, repo.ClearRefreshToken(ctx, "ghost"))

	user, err = repo.FindByUUID(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, user.RefreshToken)

	assert.ErrorIs(t, repo.SetRefreshToken(ctx, "ghost", "token"), apperror.ErrNotFound)
}
