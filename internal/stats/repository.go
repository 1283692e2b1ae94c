package stats

import (
	"context"
	"errors"
	"fmt"

	"BestXI/internal/model"

	"github.com/sirupsen/logrus"
)

// ErrDataSourceUnavailable 统计数据源缺失或损坏，仓库退化为空
var ErrDataSourceUnavailable = errors.New("统计数据源不可用")

// Source 统计数据来源（CSV 文件 / player_stats 表）
type Source interface {
	Name() string
	LoadRecords(ctx context.Context) ([]model.StatsRecord, error)
}

// Repository 按球员姓名（区分大小写）建立的只读索引，加载完成后不再修改
type Repository struct {
	records map[string]model.StatsRecord
}

// Empty 空仓库，所有查询均未命中
func Empty() *Repository {
	return &Repository{records: map[string]model.StatsRecord{}}
}

// NewRepository 同名记录后者覆盖前者
func NewRepository(records []model.StatsRecord) *Repository {
	r := &Repository{records: make(map[string]model.StatsRecord, len(records))}
	for _, rec := range records {
		r.records[rec.Player] = rec
	}
	return r
}

// Load 从数据源加载；失败时返回空仓库和包装了 ErrDataSourceUnavailable 的错误，调用方可以继续使用返回的仓库
func Load(ctx context.Context, src Source, logger *logrus.Logger) (*Repository, error) {
	records, err := src.LoadRecords(ctx)
	if err != nil {
		logger.WithError(err).WithField("source", src.Name()).Warn("加载统计数据失败，所有球员按0分处理")
		return Empty(), fmt.Errorf("%w: %w", ErrDataSourceUnavailable, err)
	}
	repo := NewRepository(records)
	logger.WithFields(logrus.Fields{
		"source":  src.Name(),
		"rows":    len(records),
		"players": repo.Len(),
	}).Info("统计数据加载完成")
	return repo, nil
}

// Lookup 精确匹配球员姓名
func (r *Repository) Lookup(name string) (model.StatsRecord, bool) {
	rec, ok := r.records[name]
	return rec, ok
}

// Len 索引中的球员数
func (r *Repository) Len() int {
	return len(r.records)
}
