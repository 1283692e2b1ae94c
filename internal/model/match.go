package model

import "time"

// MatchStatus 比赛状态（由适配器在归一化时一次性推导，之后不再修改）
type MatchStatus string

const (
	MatchUpcoming  MatchStatus = "upcoming"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
)

// Player 统一的球员模型（name 为与统计表关联的唯一键）
type Player struct {
	Name         string  `json:"name"`
	Team         string  `json:"team,omitempty"`
	Role         string  `json:"role,omitempty"`
	BattingStyle string  `json:"battingStyle,omitempty"`
	Playing      bool    `json:"playing,omitempty"` // 上游标记为首发（仅在阵容确认后有意义）
	Score        float64 `json:"score"`
}

// Team 一支球队及其有序名单
type Team struct {
	Name      string   `json:"name"`
	ShortName string   `json:"shortName,omitempty"`
	Squad     []Player `json:"squad"`
	Confirmed bool     `json:"confirmed"`
}

// Match 归一化之后的比赛，下游组件只依赖此结构
type Match struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Feed           string      `json:"feed,omitempty"`
	Date           time.Time   `json:"date"`
	StatusText     string      `json:"statusText"`
	Started        bool        `json:"started"`
	Status         MatchStatus `json:"status"`
	Teams          [2]Team     `json:"teams"`
	Unassigned     Team        `json:"unassigned"` // 上游只给了不分队的名单（Name 为空，球员不标球队）
	SquadAnnounced bool        `json:"squadAnnounced"`
}

// SquadGroups 依次返回两支球队和未分队名单
func (m *Match) SquadGroups() []Team {
	return []Team{m.Teams[0], m.Teams[1], m.Unassigned}
}
