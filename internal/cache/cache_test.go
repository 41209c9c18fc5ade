package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/aminrz/transfer-registry/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewUniversalClient(&goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	return mr, redis.NewRedisAdapterWithClient(client, "registry")
}

func TestViewCache_RoundTrip(t *testing.T) {
	_, adapter := setupTestCache(t)
	c := NewViewCache[model.User](adapter, time.Minute)

	_, ok := c.Get("user:1")
	assert.False(t, ok)

	c.Set("user:1", &model.User{ID: 1, Username: "jdoe", Email: "jdoe@example.com"})

	got, ok := c.Get("user:1")
	require.True(t, ok)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "jdoe", got.Username)
	assert.Equal(t, "jdoe@example.com", got.Email)
}

func TestViewCache_Delete(t *testing.T) {
	_, adapter := setupTestCache(t)
	c := NewViewCache[model.User](adapter, time.Minute)

	c.Set("user:1", &model.User{ID: 1, Username: "jdoe"})
	c.Delete("user:1")

	_, ok := c.Get("user:1")
	assert.False(t, ok)
}

func TestViewCache_TTLExpiry(t *testing.T) {
	mr, adapter := setupTestCache(t)
	c := NewViewCache[model.User](adapter, time.Second)

	c.Set("user:1", &model.User{ID: 1, Username: "jdoe"})

	mr.FastForward(2 * time.Second)

	_, ok := c.Get("user:1")
	assert.False(t, ok)
}

func TestViewCache_CorruptPayloadIsAMiss(t *testing.T) {
	mr, adapter := setupTestCache(t)
	c := NewViewCache[model.User](adapter, time.Minute)

	require.NoError(t, mr.Set("registry:user:1", "{not json"))

	_, ok := c.Get("user:1")
	assert.False(t, ok)
}
