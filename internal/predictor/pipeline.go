package predictor

import (
	"fmt"
	"time"

	"BestXI/internal/interfaces"
	"BestXI/internal/model"

	"github.com/sirupsen/logrus"
)

// Pipeline 逐场执行：归一化 → 名单判定 → 打分 → 选人。单场失败只影响该场
type Pipeline struct {
	normalizer interfaces.MatchNormalizer
	scorer     *Scorer
	policy     Policy
	now        func() time.Time
	logger     *logrus.Logger
}

// NewPipeline stats 应为本轮固定的快照，保证同样输入得到同样输出
func NewPipeline(normalizer interfaces.MatchNormalizer, stats interfaces.StatsLookup, policy Policy, now func() time.Time, logger *logrus.Logger) *Pipeline {
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		normalizer: normalizer,
		scorer:     NewScorer(policy, stats),
		policy:     policy,
		now:        now,
		logger:     logger,
	}
}

// Run 按输入顺序返回每场比赛的结果；不重试，形态不匹配的比赛标记为 skipped
func (p *Pipeline) Run(raws []model.RawMatch) []model.PredictionResult {
	generatedAt := p.now()
	results := make([]model.PredictionResult, 0, len(raws))
	counts := make(map[model.ResultKind]int)

	for i, raw := range raws {
		res := p.runOne(i, raw, generatedAt)
		counts[res.Kind]++
		results = append(results, res)
	}

	if len(raws) == 0 {
		p.logger.Warn("本轮没有比赛")
	} else {
		p.logger.WithFields(logrus.Fields{
			"matches":   len(raws),
			"predicted": counts[model.ResultPredicted],
			"pending":   counts[model.ResultPending],
			"skipped":   counts[model.ResultSkipped],
			"policy":    p.policy,
		}).Info("本轮预测完成")
	}
	return results
}

func (p *Pipeline) runOne(idx int, raw model.RawMatch, generatedAt time.Time) (res model.PredictionResult) {
	res = model.PredictionResult{
		MatchID:     fmt.Sprintf("%s#%d", raw.Feed, idx),
		Feed:        raw.Feed,
		Policy:      string(p.policy),
		GeneratedAt: generatedAt,
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithFields(logrus.Fields{"feed": raw.Feed, "match_id": res.MatchID}).Errorf("处理比赛时发生panic: %v", r)
			res.Kind = model.ResultSkipped
			res.XI = nil
			res.Reason = fmt.Sprintf("内部错误: %v", r)
		}
	}()

	match, err := p.normalizer.Normalize(raw)
	if err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{"feed": raw.Feed, "index": idx}).Warn("比赛记录无法归一化，本轮跳过")
		res.Kind = model.ResultSkipped
		res.Reason = err.Error()
		return res
	}
	res.MatchID = match.ID
	res.MatchName = match.Name
	res.Status = match.Status

	resolution := ResolveSquad(match)
	res.Squad = resolution.State
	if resolution.State == model.SquadNone {
		res.Kind = model.ResultPending
		return res
	}

	candidates := make([]Candidate, 0, len(resolution.Players))
	for _, pl := range resolution.Players {
		enriched := p.scorer.Enrich(pl)
		candidates = append(candidates, Candidate{Player: enriched, Key: p.scorer.Score(enriched)})
	}
	res.XI = SelectXI(candidates, p.policy)
	res.Kind = model.ResultPredicted
	return res
}

// Presentable 过滤掉 skipped，只保留可以展示的结果（预测或待定）
func Presentable(results []model.PredictionResult) []model.PredictionResult {
	out := make([]model.PredictionResult, 0, len(results))
	for _, r := range results {
		if r.Kind != model.ResultSkipped {
			out = append(out, r)
		}
	}
	return out
}
