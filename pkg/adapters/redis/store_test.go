package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/tmsim/pkg/adapters/redis"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	return mr, backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunResultStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	key := ports.ResultKey("abc", 0, "1")

	err := store.Save(ctx, key, &domain.Result{Input: "1", Status: domain.StatusHalted})
	require.NoError(t, err)

	keys, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, keys, key)

	// Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, key)
	assert.ErrorIs(t, err, domain.ErrResultNotFound)

	// The index is pruned against time.Now(), which miniredis cannot move.
	time.Sleep(1200 * time.Millisecond)

	keys, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()
	key := "fp:0:101"

	err := store.Save(ctx, key, &domain.Result{Input: "101"})
	assert.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:fp:0:101"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, list, key)
}

func TestRedisStore_Ping(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	assert.NoError(t, store.Ping(context.Background()))
	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}

func TestRedisStore_New(t *testing.T) {
	mr, _ := newClient(t)

	store := redis.New(mr.Addr(), "", 0)
	defer store.Close()

	require.NoError(t, store.Save(context.Background(), "k", &domain.Result{Input: "x"}))
	assert.True(t, mr.Exists(redis.DefaultPrefix+"k"))
}
