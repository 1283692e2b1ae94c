package cache

import (
	"context"
	"fmt"
	"time"

	"BestXI/internal/model"
)

// FeedCache 缓存每个数据源最近一次拉取到的原始比赛记录
type FeedCache interface {
	// Get 未命中时返回 ok=false、err=nil
	Get(ctx context.Context, key string) ([]model.RawMatch, bool, error)
	Set(ctx context.Context, key string, matches []model.RawMatch, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// FeedKey 数据源缓存键
func FeedKey(feed string) string {
	return fmt.Sprintf("bestxi:feed:%s:matches", feed)
}
