package predictor

import (
	"fmt"
	"math"
	"strings"

	"BestXI/internal/interfaces"
	"BestXI/internal/model"
)

// Policy 选人策略，整条流水线统一，不按球员区分
type Policy string

const (
	PolicyScore Policy = "score" // 按历史得分
	PolicyRole  Policy = "role"  // 按角色优先级
)

// RolePriority 角色优先级，下标越小越优先
var RolePriority = []string{
	"Batting Allrounder",
	"Bowling Allrounder",
	"Allrounder",
	"Bowler",
	"Batsman",
	"WK-Batsman",
	"Wicketkeeper",
}

// UnknownRolePriority 未知或缺失角色，排在所有已知角色之后
var UnknownRolePriority = len(RolePriority)

// ParsePolicy 解析配置项 prediction.policy（忽略大小写与首尾空白），空值为 score
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyScore:
		return PolicyScore, nil
	case PolicyRole:
		return PolicyRole, nil
	default:
		return "", fmt.Errorf("未知的选人策略: %s（可选 score/role）", s)
	}
}

// RoleIndex 忽略大小写与首尾空白
func RoleIndex(role string) int {
	role = strings.TrimSpace(role)
	for i, r := range RolePriority {
		if strings.EqualFold(r, role) {
			return i
		}
	}
	return UnknownRolePriority
}

// Scorer 计算排序键；只读统计仓库，不回写
type Scorer struct {
	policy Policy
	stats  interfaces.StatsLookup
}

func NewScorer(policy Policy, stats interfaces.StatsLookup) *Scorer {
	return &Scorer{policy: policy, stats: stats}
}

// Points 统计表中的得分，未收录为 0
func (s *Scorer) Points(p model.Player) float64 {
	rec, ok := s.stats.Lookup(p.Name)
	if !ok || math.IsNaN(rec.Points) {
		return 0
	}
	return rec.Points
}

// Score score 策略返回得分，role 策略返回角色下标
func (s *Scorer) Score(p model.Player) float64 {
	if s.policy == PolicyRole {
		return float64(RoleIndex(p.Role))
	}
	return s.Points(p)
}

// Enrich 返回带得分的球员副本；赛程未给角色时用统计表里的角色
func (s *Scorer) Enrich(p model.Player) model.Player {
	rec, ok := s.stats.Lookup(p.Name)
	if ok && p.Role == "" {
		p.Role = rec.Role
	}
	p.Score = s.Points(p)
	return p
}
