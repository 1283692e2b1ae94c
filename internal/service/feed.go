package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"BestXI/internal/cache"
	"BestXI/internal/config"
	"BestXI/internal/interfaces"
	"BestXI/internal/model"
	"BestXI/internal/utils/breaker"

	"github.com/sirupsen/logrus"
)

var (
	// ErrFeedUnavailable 数据源请求失败或熔断中，本轮该数据源按空列表处理
	ErrFeedUnavailable = errors.New("比赛数据源不可用")
	// ErrUnknownFeed 数据源未启用或未注册
	ErrUnknownFeed = errors.New("未知的比赛数据源")
)

// FeedSource 已初始化的数据源集合（adapter.FeedRegistry 实现）
type FeedSource interface {
	ListFeeds() []string
	GetAdapter(feed string) (interfaces.FeedAdapter, error)
	Config(feed string) config.FeedConfig
}

// FeedService 拉取比赛数据：先查缓存，未命中再经熔断器请求上游
type FeedService struct {
	feeds    FeedSource
	cache    cache.FeedCache
	ttl      time.Duration
	breakers map[string]*breaker.Breaker
	logger   *logrus.Logger
}

func NewFeedService(feeds FeedSource, feedCache cache.FeedCache, ttl time.Duration, logger *logrus.Logger) *FeedService {
	s := &FeedService{
		feeds:    feeds,
		cache:    feedCache,
		ttl:      ttl,
		breakers: make(map[string]*breaker.Breaker),
		logger:   logger,
	}
	for _, feed := range feeds.ListFeeds() {
		cfg := feeds.Config(feed)
		s.breakers[feed] = breaker.New(feed, cfg.FailureThreshold, time.Duration(cfg.BreakerTimeout)*time.Second, logger)
	}
	return s
}

// Feeds 启用的数据源，顺序即输出顺序
func (s *FeedService) Feeds() []string {
	return s.feeds.ListFeeds()
}

// Fetch 拉取单个数据源；force=true 时先清掉缓存再请求上游
func (s *FeedService) Fetch(ctx context.Context, feed string, force bool) ([]model.RawMatch, error) {
	feedAdapter, err := s.feeds.GetAdapter(feed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFeed, err)
	}
	key := cache.FeedKey(feed)
	log := s.logger.WithField("feed", feed)

	if force {
		if err := s.cache.Delete(ctx, key); err != nil {
			log.WithError(err).Warn("清理比赛缓存失败")
		}
	} else {
		matches, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.WithError(err).Warn("读取比赛缓存失败，直接请求数据源")
		} else if ok {
			log.WithField("matches", len(matches)).Debug("命中比赛缓存")
			return matches, nil
		}
	}

	out, err := s.breakers[feed].Execute(func() (interface{}, error) {
		return feedAdapter.FetchMatches(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFeedUnavailable, feed, err)
	}
	matches, _ := out.([]model.RawMatch)

	if err := s.cache.Set(ctx, key, matches, s.ttl); err != nil {
		log.WithError(err).Warn("写入比赛缓存失败")
	}
	return matches, nil
}

// FetchAll 依次拉取所有数据源；失败的数据源不影响其它数据源，错误合并返回
func (s *FeedService) FetchAll(ctx context.Context, force func(feed string) bool) ([]model.RawMatch, error) {
	var (
		all  []model.RawMatch
		errs []error
	)
	for _, feed := range s.feeds.ListFeeds() {
		matches, err := s.Fetch(ctx, feed, force != nil && force(feed))
		if err != nil {
			s.logger.WithError(err).WithField("feed", feed).Warn("数据源本轮不可用，按空列表处理")
			errs = append(errs, err)
			continue
		}
		all = append(all, matches...)
	}
	return all, errors.Join(errs...)
}

// BreakerStates 各数据源熔断器状态，供健康检查展示
func (s *FeedService) BreakerStates() map[string]string {
	states := make(map[string]string, len(s.breakers))
	for feed, b := range s.breakers {
		states[feed] = b.State()
	}
	return states
}
