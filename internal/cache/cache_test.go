package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"BestXI/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func sample() []model.RawMatch {
	return []model.RawMatch{
		{Feed: "cricapi", Payload: json.RawMessage(`{"id":"1"}`)},
		{Feed: "cricapi", Payload: json.RawMessage(`{"id":"2"}`)},
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	clk := &fakeClock{t: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(clk.now)
	ctx := context.Background()
	key := FeedKey("cricapi")

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, key, sample(), time.Minute))
	clk.advance(59 * time.Second)
	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sample(), got)

	clk.advance(time.Second)
	_, ok, _ = c.Get(ctx, key)
	assert.False(t, ok)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(nil)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", sample(), time.Hour))
	require.NoError(t, c.Set(ctx, "b", sample(), time.Hour))

	require.NoError(t, c.Delete(ctx, "a", "missing"))
	_, ok, _ := c.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "b")
	assert.True(t, ok)
}

func TestMemoryCacheReturnsCopy(t *testing.T) {
	c := NewMemoryCache(nil)
	ctx := context.Background()
	in := sample()
	require.NoError(t, c.Set(ctx, "k", in, time.Hour))
	in[0].Feed = "changed"

	got, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "cricapi", got[0].Feed)
}

func TestFeedKey(t *testing.T) {
	assert.Equal(t, "bestxi:feed:allsports:matches", FeedKey("allsports"))
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := NewRedisClient("http://not-redis")
	assert.Error(t, err)
}

func TestRedisCacheUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := NewRedisCache(client)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "读取缓存失败")
	assert.ErrorContains(t, c.Set(ctx, "k", sample(), time.Minute), "写入缓存失败")
	assert.NoError(t, c.Delete(ctx))
}
