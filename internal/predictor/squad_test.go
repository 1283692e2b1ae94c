package predictor

import (
	"testing"

	"BestXI/internal/model"

	"github.com/stretchr/testify/assert"
)

func team(name string, confirmed bool, players ...model.Player) model.Team {
	for i := range players {
		players[i].Team = name
	}
	return model.Team{Name: name, Confirmed: confirmed, Squad: players}
}

func TestResolveSquadNoSquad(t *testing.T) {
	r := ResolveSquad(&model.Match{Teams: [2]model.Team{{Name: "A"}, {Name: "B"}}})
	assert.Equal(t, model.SquadNone, r.State)
	assert.Empty(t, r.Players)
}

func TestResolveSquadProvisional(t *testing.T) {
	m := &model.Match{Teams: [2]model.Team{
		team("A", true, model.Player{Name: "a1", Playing: true}, model.Player{Name: "a2"}),
		team("B", false, model.Player{Name: "b1"}),
	}}
	r := ResolveSquad(m)
	assert.Equal(t, model.SquadProvisional, r.State)
	// 未全部确认时使用完整名单
	assert.Equal(t, []string{"a1", "a2", "b1"}, playerNamesOf(r.Players))
	assert.Equal(t, "B", r.Players[2].Team)
}

func TestResolveSquadOneSidedProvisional(t *testing.T) {
	m := &model.Match{Teams: [2]model.Team{{Name: "A"}, team("B", false, model.Player{Name: "b1"})}}
	r := ResolveSquad(m)
	assert.Equal(t, model.SquadProvisional, r.State)
	assert.Equal(t, []string{"b1"}, playerNamesOf(r.Players))
}

func TestResolveSquadConfirmed(t *testing.T) {
	m := &model.Match{Teams: [2]model.Team{
		team("A", true, model.Player{Name: "a1", Playing: true}, model.Player{Name: "bench"}, model.Player{Name: "a2", Playing: true}),
		team("B", true, model.Player{Name: "b1"}, model.Player{Name: "b2"}),
	}}
	r := ResolveSquad(m)
	assert.Equal(t, model.SquadConfirmed, r.State)
	assert.Equal(t, []string{"a1", "a2", "b1", "b2"}, playerNamesOf(r.Players))
}

func TestResolveSquadTagsMissingTeam(t *testing.T) {
	m := &model.Match{Teams: [2]model.Team{
		{Name: "A", Squad: []model.Player{{Name: "a1"}}},
		{Name: "B"},
	}}
	r := ResolveSquad(m)
	assert.Equal(t, "A", r.Players[0].Team)
	assert.Equal(t, "", m.Teams[0].Squad[0].Team, "input match is not mutated")
}

func TestResolveSquadUnassignedOnly(t *testing.T) {
	m := &model.Match{
		Teams:      [2]model.Team{{Name: "India"}, {Name: "Australia"}},
		Unassigned: model.Team{Squad: []model.Player{{Name: "Virat Kohli"}, {Name: "Steve Smith"}}},
	}
	r := ResolveSquad(m)
	assert.Equal(t, model.SquadProvisional, r.State)
	assert.Equal(t, []string{"Virat Kohli", "Steve Smith"}, playerNamesOf(r.Players))
	assert.Empty(t, r.Players[0].Team)
}

func TestResolveSquadUnassignedAfterTeams(t *testing.T) {
	m := &model.Match{
		Teams:      [2]model.Team{team("A", true, model.Player{Name: "a1"}), {Name: "B"}},
		Unassigned: model.Team{Confirmed: true, Squad: []model.Player{{Name: "x1"}}},
	}
	r := ResolveSquad(m)
	assert.Equal(t, model.SquadConfirmed, r.State)
	assert.Equal(t, []string{"a1", "x1"}, playerNamesOf(r.Players))
	assert.Equal(t, "A", r.Players[0].Team)
	assert.Empty(t, r.Players[1].Team)
}

func playerNamesOf(ps []model.Player) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}
