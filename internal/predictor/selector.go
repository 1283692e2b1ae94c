package predictor

import (
	"sort"

	"BestXI/internal/model"
)

// XISize 最佳阵容人数
const XISize = 11

// Candidate 待选球员及其排序键
type Candidate struct {
	Player model.Player
	Key    float64
}

// SelectXI 稳定排序后取前 11 人：score 策略按键降序，role 策略按键升序；键相同保持名单原顺序
func SelectXI(candidates []Candidate, policy Policy) []model.RankedPlayer {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)

	if policy == PolicyRole {
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	} else {
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key > sorted[j].Key })
	}

	n := len(sorted)
	if n > XISize {
		n = XISize
	}
	xi := make([]model.RankedPlayer, 0, n)
	for i, c := range sorted[:n] {
		xi = append(xi, model.RankedPlayer{
			Rank:    i + 1,
			Name:    c.Player.Name,
			Team:    c.Player.Team,
			Role:    c.Player.Role,
			Score:   c.Player.Score,
			RankKey: c.Key,
		})
	}
	return xi
}
