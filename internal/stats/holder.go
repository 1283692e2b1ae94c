package stats

import (
	"context"
	"sync"

	"BestXI/internal/model"

	"github.com/sirupsen/logrus"
)

// Holder 持有当前生效的 Repository，支持显式重新加载
type Holder struct {
	reloadMu sync.Mutex // 加载与替换在同一把锁内完成，Reload 按调用顺序串行
	mu       sync.RWMutex
	repo     *Repository
	loaded   bool
	source   Source
	logger   *logrus.Logger
}

func NewHolder(source Source, logger *logrus.Logger) *Holder {
	return &Holder{repo: Empty(), source: source, logger: logger}
}

// Reload 首次加载失败时退化为空仓库；之后的重新加载失败则保留上一次成功的数据
func (h *Holder) Reload(ctx context.Context) error {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	repo, err := Load(ctx, h.source, h.logger)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil && h.loaded {
		h.logger.WithField("players", h.repo.Len()).Warn("重新加载统计数据失败，继续使用上一次的数据")
		return err
	}
	h.repo = repo
	h.loaded = err == nil
	return err
}

// Current 当前快照；一轮预测内应始终使用同一快照
func (h *Holder) Current() *Repository {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.repo
}

func (h *Holder) Lookup(name string) (model.StatsRecord, bool) {
	return h.Current().Lookup(name)
}
