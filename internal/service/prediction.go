package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"BestXI/internal/interfaces"
	"BestXI/internal/model"
	"BestXI/internal/predictor"
	"BestXI/internal/repository"
	"BestXI/internal/stats"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Publisher 每轮结束后推送最新结果（push.Hub 实现）
type Publisher interface {
	Publish(v interface{})
}

// PredictionService 驱动一轮轮预测：拉数据 → 流水线 → 保存最新结果
type PredictionService struct {
	refreshMu sync.Mutex // 定时任务与手动刷新串行执行

	feeds      *FeedService
	stats      *stats.Holder
	normalizer interfaces.MatchNormalizer
	policy     predictor.Policy
	repo       repository.PredictionRepository // 可为 nil（未启用数据库）
	publisher  Publisher                       // 可为 nil
	retention  time.Duration
	now        func() time.Time
	logger     *logrus.Logger

	mu          sync.RWMutex
	latest      []model.PredictionResult
	refreshedAt time.Time
}

type PredictionServiceOptions struct {
	Feeds      *FeedService
	Stats      *stats.Holder
	Normalizer interfaces.MatchNormalizer
	Policy     predictor.Policy
	Repo       repository.PredictionRepository
	Publisher  Publisher
	Retention  time.Duration
	Now        func() time.Time
	Logger     *logrus.Logger
}

func NewPredictionService(opts PredictionServiceOptions) *PredictionService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &PredictionService{
		feeds:      opts.Feeds,
		stats:      opts.Stats,
		normalizer: opts.Normalizer,
		policy:     opts.Policy,
		repo:       opts.Repo,
		publisher:  opts.Publisher,
		retention:  opts.Retention,
		now:        opts.Now,
		logger:     opts.Logger,
	}
}

// LoadLatest 启动时从数据库恢复最近一轮结果
func (s *PredictionService) LoadLatest(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	results, err := s.repo.LatestRun(ctx)
	if err != nil {
		return fmt.Errorf("加载最近一轮预测失败: %w", err)
	}
	if len(results) == 0 {
		return nil
	}
	s.setLatest(results, results[0].GeneratedAt)
	s.logger.WithField("matches", len(results)).Info("已恢复最近一轮预测结果")
	return nil
}

// Refresh 跑一轮完整预测；force=true 时所有数据源都绕过缓存。
// 数据源失败只会让该数据源本轮为空，返回的 error 仅用于展示
func (s *PredictionService) Refresh(ctx context.Context, force bool) ([]model.PredictionResult, error) {
	return s.refresh(ctx, func(string) bool { return force })
}

// RefreshFeed 手动刷新：清掉指定数据源的缓存，其余数据源照常走缓存
func (s *PredictionService) RefreshFeed(ctx context.Context, feed string) ([]model.PredictionResult, error) {
	if !s.hasFeed(feed) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeed, feed)
	}
	return s.refresh(ctx, func(f string) bool { return f == feed })
}

func (s *PredictionService) hasFeed(feed string) bool {
	for _, f := range s.feeds.Feeds() {
		if f == feed {
			return true
		}
	}
	return false
}

func (s *PredictionService) refresh(ctx context.Context, force func(string) bool) ([]model.PredictionResult, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	raws, fetchErr := s.feeds.FetchAll(ctx, force)

	// 统计快照在本轮内固定，重新加载只影响下一轮
	pipeline := predictor.NewPipeline(s.normalizer, s.stats.Current(), s.policy, s.now, s.logger)
	results := pipeline.Run(raws)

	generatedAt := s.now()
	if len(results) > 0 {
		generatedAt = results[0].GeneratedAt
	}
	s.setLatest(results, generatedAt)
	if s.publisher != nil {
		s.publisher.Publish(model.NewPredictionSnapshot(predictor.Presentable(results), generatedAt))
	}
	s.persist(ctx, results)
	return results, fetchErr
}

// persist 落库失败只记日志，不影响内存中的最新结果
func (s *PredictionService) persist(ctx context.Context, results []model.PredictionResult) {
	if s.repo == nil || len(results) == 0 {
		return
	}
	runID := uuid.NewString()
	log := s.logger.WithField("run_id", runID)
	if err := s.repo.SaveRun(ctx, runID, results); err != nil {
		log.WithError(err).Error("保存预测结果失败")
		return
	}
	if s.retention <= 0 {
		return
	}
	cutoff := s.now().Add(-s.retention)
	n, err := s.repo.PruneBefore(ctx, cutoff)
	if err != nil {
		log.WithError(err).Warn("清理过期预测结果失败")
		return
	}
	if n > 0 {
		log.WithField("rows", n).Debug("已清理过期预测结果")
	}
}

func (s *PredictionService) setLatest(results []model.PredictionResult, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = results
	s.refreshedAt = at
}

// Latest 最近一轮的全部结果（含 skipped）及生成时间
func (s *PredictionService) Latest() ([]model.PredictionResult, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.PredictionResult, len(s.latest))
	copy(out, s.latest)
	return out, s.refreshedAt
}

// Snapshot 最近一轮可展示的结果（predicted + pending）
func (s *PredictionService) Snapshot() model.PredictionSnapshot {
	results, at := s.Latest()
	return model.NewPredictionSnapshot(predictor.Presentable(results), at)
}

// Get 按比赛 ID 查询最近一轮结果
func (s *PredictionService) Get(matchID string) (model.PredictionResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.latest {
		if r.MatchID == matchID {
			return r, true
		}
	}
	return model.PredictionResult{}, false
}
