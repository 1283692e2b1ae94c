package predictor

import (
	"fmt"
	"testing"

	"BestXI/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStats map[string]model.StatsRecord

func (m mapStats) Lookup(name string) (model.StatsRecord, bool) {
	rec, ok := m[name]
	return rec, ok
}

func candidatesFor(policy Policy, stats mapStats, players ...model.Player) []Candidate {
	s := NewScorer(policy, stats)
	out := make([]Candidate, 0, len(players))
	for _, p := range players {
		e := s.Enrich(p)
		out = append(out, Candidate{Player: e, Key: s.Score(e)})
	}
	return out
}

func names(xi []model.RankedPlayer) []string {
	out := make([]string, 0, len(xi))
	for _, p := range xi {
		out = append(out, p.Name)
	}
	return out
}

func TestSelectXIScoreScenario(t *testing.T) {
	stats := mapStats{
		"A": {Player: "A", Points: 80},
		"B": {Player: "B", Points: 60},
		"C": {Player: "C", Points: 40},
		"D": {Player: "D", Points: 20},
		"E": {Player: "E", Points: 0},
	}
	squad := []model.Player{{Name: "E"}, {Name: "F"}, {Name: "C"}, {Name: "A"}, {Name: "D"}, {Name: "B"}}
	// 按 A..F 原顺序输入
	ordered := []model.Player{squad[3], squad[5], squad[2], squad[4], squad[0], squad[1]}

	xi := SelectXI(candidatesFor(PolicyScore, stats, ordered...), PolicyScore)

	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, names(xi))
	scores := make([]float64, 0, len(xi))
	for i, p := range xi {
		scores = append(scores, p.Score)
		assert.Equal(t, i+1, p.Rank)
	}
	assert.Equal(t, []float64{80, 60, 40, 20, 0, 0}, scores)
}

func TestSelectXIAbsentPlayersKeepSquadOrder(t *testing.T) {
	stats := mapStats{"Star": {Player: "Star", Points: 5}}
	xi := SelectXI(candidatesFor(PolicyScore, stats,
		model.Player{Name: "Z"}, model.Player{Name: "Y"}, model.Player{Name: "Star"}, model.Player{Name: "X"},
	), PolicyScore)
	assert.Equal(t, []string{"Star", "Z", "Y", "X"}, names(xi))
}

func TestSelectXITopElevenStrictlyDescending(t *testing.T) {
	stats := mapStats{}
	var players []model.Player
	for i := 0; i < 22; i++ {
		name := fmt.Sprintf("P%02d", i)
		// 打乱得分顺序，得分互不相同
		stats[name] = model.StatsRecord{Player: name, Points: float64((i * 7) % 22)}
		players = append(players, model.Player{Name: name})
	}

	xi := SelectXI(candidatesFor(PolicyScore, stats, players...), PolicyScore)
	require.Len(t, xi, XISize)
	for i := 1; i < len(xi); i++ {
		assert.Greater(t, xi[i-1].Score, xi[i].Score)
	}
	assert.Equal(t, 21.0, xi[0].Score)
	assert.Equal(t, 11.0, xi[len(xi)-1].Score)
}

func TestSelectXIUndersized(t *testing.T) {
	for size := 0; size <= XISize; size++ {
		var players []model.Player
		for i := 0; i < size; i++ {
			players = append(players, model.Player{Name: fmt.Sprintf("P%d", i)})
		}
		for _, policy := range []Policy{PolicyScore, PolicyRole} {
			xi := SelectXI(candidatesFor(policy, mapStats{}, players...), policy)
			assert.Len(t, xi, size)
		}
	}
}

func TestSelectXIEmpty(t *testing.T) {
	assert.Empty(t, SelectXI(nil, PolicyScore))
	assert.Empty(t, SelectXI([]Candidate{}, PolicyRole))
}

func TestSelectXIRolePriority(t *testing.T) {
	players := []model.Player{
		{Name: "bowler", Role: "Bowler"},
		{Name: "batsman", Role: "Batsman"},
		{Name: "keeper", Role: "Wicketkeeper"},
		{Name: "allrounder", Role: "Allrounder"},
		{Name: "mystery", Role: "UnknownRole"},
	}
	xi := SelectXI(candidatesFor(PolicyRole, mapStats{}, players...), PolicyRole)
	assert.Equal(t, []string{"allrounder", "bowler", "batsman", "keeper", "mystery"}, names(xi))
}

func TestSelectXIRoleTiesKeepOrder(t *testing.T) {
	players := []model.Player{
		{Name: "b1", Role: "Bowler"},
		{Name: "x1"},
		{Name: "b2", Role: "bowler"},
		{Name: "ba", Role: "Batting Allrounder"},
		{Name: "x2", Role: "Coach"},
	}
	xi := SelectXI(candidatesFor(PolicyRole, mapStats{}, players...), PolicyRole)
	assert.Equal(t, []string{"ba", "b1", "b2", "x1", "x2"}, names(xi))
}

func TestSelectXIDoesNotMutateInput(t *testing.T) {
	in := []Candidate{{Player: model.Player{Name: "low"}, Key: 1}, {Player: model.Player{Name: "high"}, Key: 2}}
	_ = SelectXI(in, PolicyScore)
	assert.Equal(t, "low", in[0].Player.Name)
}
