package cache

import (
	"context"
	"sync"
	"time"

	"BestXI/internal/model"
)

type memoryEntry struct {
	matches   []model.RawMatch
	expiresAt time.Time
}

// MemoryCache 未配置 Redis 时使用的进程内缓存
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache(now func() time.Time) *MemoryCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{entries: make(map[string]memoryEntry), now: now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]model.RawMatch, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return cloneMatches(e.matches), true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, matches []model.RawMatch, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{matches: cloneMatches(matches), expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

// 调用方拿到的切片可能被追加修改，这里只复制外层
func cloneMatches(in []model.RawMatch) []model.RawMatch {
	if in == nil {
		return nil
	}
	out := make([]model.RawMatch, len(in))
	copy(out, in)
	return out
}
