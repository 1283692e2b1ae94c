package model

import "time"

// SquadState 名单状态
type SquadState string

const (
	SquadNone        SquadState = "no_squad"
	SquadProvisional SquadState = "provisional"
	SquadConfirmed   SquadState = "confirmed"
)

// ResultKind 单场预测结果类型
type ResultKind string

const (
	ResultPredicted ResultKind = "predicted"
	ResultPending   ResultKind = "pending" // 名单未公布
	ResultSkipped   ResultKind = "skipped" // 数据形态不匹配等，本轮跳过
)

// RankedPlayer 最佳阵容中的一名球员
type RankedPlayer struct {
	Rank    int     `json:"rank"`
	Name    string  `json:"name"`
	Team    string  `json:"team"`
	Role    string  `json:"role"`
	Score   float64 `json:"score"`
	RankKey float64 `json:"rankKey"`
}

// PredictionResult 单场比赛的一次预测结果，每轮重新生成，不做原地修改
type PredictionResult struct {
	MatchID     string         `json:"matchId"`
	MatchName   string         `json:"matchName"`
	Feed        string         `json:"feed,omitempty"`
	Status      MatchStatus    `json:"status,omitempty"`
	Kind        ResultKind     `json:"kind"`
	Squad       SquadState     `json:"squad,omitempty"`
	Policy      string         `json:"policy"`
	XI          []RankedPlayer `json:"xi"`
	Reason      string         `json:"reason,omitempty"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// PredictionSnapshot 一轮预测的对外视图（HTTP 列表与 WebSocket 推送共用）
type PredictionSnapshot struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Total       int                `json:"total"`
	List        []PredictionResult `json:"list"`
}

// NewPredictionSnapshot Total 与 List 长度一致，List 为 nil 时输出空数组
func NewPredictionSnapshot(results []PredictionResult, generatedAt time.Time) PredictionSnapshot {
	if results == nil {
		results = []PredictionResult{}
	}
	return PredictionSnapshot{GeneratedAt: generatedAt, Total: len(results), List: results}
}
