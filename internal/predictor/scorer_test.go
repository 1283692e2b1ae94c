package predictor

import (
	"math"
	"testing"

	"BestXI/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRoleIndex(t *testing.T) {
	for i, role := range RolePriority {
		assert.Equal(t, i, RoleIndex(role))
	}
	assert.Equal(t, 3, RoleIndex("  bowler "))
	assert.Equal(t, 5, RoleIndex("wk-batsman"))
	assert.Equal(t, UnknownRolePriority, RoleIndex(""))
	assert.Equal(t, UnknownRolePriority, RoleIndex("Umpire"))
	assert.Greater(t, UnknownRolePriority, len(RolePriority)-1)
}

func TestScorerScorePolicy(t *testing.T) {
	stats := mapStats{
		"A":   {Player: "A", Points: 42.5},
		"NaN": {Player: "NaN", Points: math.NaN()},
	}
	s := NewScorer(PolicyScore, stats)

	assert.Equal(t, 42.5, s.Score(model.Player{Name: "A"}))
	assert.Equal(t, 0.0, s.Score(model.Player{Name: "absent"}))
	assert.Equal(t, 0.0, s.Score(model.Player{Name: "NaN"}))
	assert.Equal(t, 0.0, s.Score(model.Player{Name: "a"}), "names are matched exactly")
}

func TestScorerRolePolicy(t *testing.T) {
	stats := mapStats{"K": {Player: "K", Role: "Wicketkeeper", Points: 9}}
	s := NewScorer(PolicyRole, stats)

	assert.Equal(t, 0.0, s.Score(model.Player{Name: "X", Role: "Batting Allrounder"}))
	assert.Equal(t, float64(UnknownRolePriority), s.Score(model.Player{Name: "Y"}))

	k := s.Enrich(model.Player{Name: "K"})
	assert.Equal(t, "Wicketkeeper", k.Role)
	assert.Equal(t, 9.0, k.Score)
	assert.Equal(t, 6.0, s.Score(k))
}

func TestEnrichKeepsFeedRole(t *testing.T) {
	stats := mapStats{"K": {Player: "K", Role: "Wicketkeeper", Points: 9}}
	p := NewScorer(PolicyScore, stats).Enrich(model.Player{Name: "K", Role: "WK-Batsman"})
	assert.Equal(t, "WK-Batsman", p.Role)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, PolicyScore, p)

	p, err = ParsePolicy(" ROLE ")
	assert.NoError(t, err)
	assert.Equal(t, PolicyRole, p)

	_, err = ParsePolicy("coinflip")
	assert.Error(t, err)
}
