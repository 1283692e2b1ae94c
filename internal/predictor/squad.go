package predictor

import "BestXI/internal/model"

// Resolution 一场比赛的名单状态及候选球员（两队、未分队名单按顺序拼接）
type Resolution struct {
	State   model.SquadState
	Players []model.Player
}

// ResolveSquad 两队及未分队名单都为空 → NoSquad；所有有名单的分组均已确认首发 → Confirmed；否则 Provisional
func ResolveSquad(m *model.Match) Resolution {
	announced := false
	confirmed := true
	groups := m.SquadGroups()
	for _, team := range groups {
		if len(team.Squad) == 0 {
			continue
		}
		announced = true
		if !team.Confirmed {
			confirmed = false
		}
	}
	if !announced {
		return Resolution{State: model.SquadNone}
	}

	state := model.SquadProvisional
	if confirmed {
		state = model.SquadConfirmed
	}

	var players []model.Player
	for _, team := range groups {
		squad := team.Squad
		if state == model.SquadConfirmed {
			squad = playingOnly(squad)
		}
		for _, p := range squad {
			if p.Team == "" {
				p.Team = team.Name
			}
			players = append(players, p)
		}
	}
	return Resolution{State: state, Players: players}
}

// playingOnly 上游标记了首发时只保留首发，未标记任何人则保留整份名单
func playingOnly(squad []model.Player) []model.Player {
	var playing []model.Player
	for _, p := range squad {
		if p.Playing {
			playing = append(playing, p)
		}
	}
	if len(playing) == 0 {
		return squad
	}
	return playing
}
