package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisFromClient(client, ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestKey(t *testing.T) {
	a := Key(60, 10, 5, 85)
	b := Key(60, 10, 5, 85)
	c := Key(60, 10, 5, 86)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, KeyPrefix))
	assert.NotEqual(t, Key(1, 23, 5, 85), Key(12, 3, 5, 85), "field boundaries must be preserved")
}

func TestRedisSetGet(t *testing.T) {
	c, mr := newTestRedis(t, time.Minute)
	ctx := context.Background()
	key := Key(60, 10, 5, 85)

	_, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, key, []byte(`{"status":"success"}`)))

	val, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"status":"success"}`, string(val))
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestRedisExpiry(t *testing.T) {
	c, mr := newTestRedis(t, 30*time.Second)
	ctx := context.Background()
	key := Key(80, 10, 0.5, 85)

	require.NoError(t, c.Set(ctx, key, []byte("x")))
	mr.FastForward(31 * time.Second)

	_, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisGetError(t *testing.T) {
	c, mr := newTestRedis(t, time.Minute)
	mr.Close()

	_, found, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, found)
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedis(context.Background(), "redis://"+mr.Addr()+"/0", time.Minute)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(context.Background(), "k", []byte("v")))
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	_, err = NewRedis(context.Background(), "not a url", time.Minute)
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	require.NoError(t, c.Set(context.Background(), "k", []byte("v")))
	_, found, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Close())
}
