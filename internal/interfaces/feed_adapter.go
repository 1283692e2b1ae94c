package interfaces

import (
	"context"

	"BestXI/internal/model"
)

// FeedAdapter 所有比赛数据源必须实现的核心接口
type FeedAdapter interface {
	GetName() string                                            // 数据源名称
	FetchMatches(ctx context.Context) ([]model.RawMatch, error) // 拉取比赛原始记录
}

// MatchNormalizer 把任意形态的原始记录归一化为 model.Match
type MatchNormalizer interface {
	Normalize(raw model.RawMatch) (*model.Match, error)
}

// StatsLookup 按球员姓名精确查找历史统计
type StatsLookup interface {
	Lookup(name string) (model.StatsRecord, bool)
}
