package repository

import (
	"account-service/config"
	"account-service/internal/model"
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newUnreachableCache(t *testing.T) *CacheRepository {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewCacheRepository(&config.RedisClient{Client: client}, time.Minute)
}

func TestCacheRepository_Key(t *testing.T) {
	repo := NewCacheRepository(nil, time.Minute)
	assert.Equal(t, "user:u-1", repo.key("u-1"))
}

func TestCacheRepository_ErrorsSurface(t *testing.T) {
	repo := newUnreachableCache(t)
	ctx := context.Background()

	user, err := repo.GetUser(ctx, "u-1")
	assert.Error(t, err)
	assert.Nil(t, user)

	assert.Error(t, repo.SetUser(ctx, &model.User{UUID: "u-1"}))
	assert.Error(t, repo.DeleteUser(ctx, "u-1"))
}
