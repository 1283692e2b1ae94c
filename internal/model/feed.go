package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawMatch 所有数据源的原始比赛记录通用结构
type RawMatch struct {
	Feed    string          `json:"feed"`    // 数据源名称（cricapi/allsports）
	Payload json.RawMessage `json:"payload"` // 原始 JSON，由适配器负责解析
}

// ========== 已知的上游比赛结构（字段并集，按存在性判断形态） ==========

// FeedMatch 比赛记录
//   - 形态 a：teamInfo[] 中每个球队自带 players[]
//   - 形态 b：teams[] 仅为队名，squads[] 按队名单独给出名单
//   - 形态 c：AllSportsAPI livescore，主客队平铺在 event_* 字段；名单为 event_*_squad 或不分队的 squad
type FeedMatch struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Date            string         `json:"date"`
	DateTimeGMT     string         `json:"dateTimeGMT"`
	Status          string         `json:"status"`
	MatchStarted    bool           `json:"matchStarted"`
	LineupConfirmed bool           `json:"lineupConfirmed"`
	Teams           []string       `json:"teams"`
	TeamInfo        []FeedTeamInfo `json:"teamInfo"`
	Squads          []FeedSquad    `json:"squads"`

	EventKey       FlexString   `json:"event_key"`
	EventHomeTeam  string       `json:"event_home_team"`
	EventAwayTeam  string       `json:"event_away_team"`
	EventDateStart string       `json:"event_date_start"`
	EventStatus    string       `json:"event_status"`
	EventLive      FlexString   `json:"event_live"`
	EventHomeSquad []FeedPlayer `json:"event_home_squad"`
	EventAwaySquad []FeedPlayer `json:"event_away_squad"`
	Squad          []FeedPlayer `json:"squad"` // 不分队的名单，仅形态 c 使用
}

// FeedTeamInfo 形态 a 的球队信息
type FeedTeamInfo struct {
	Name      string       `json:"name"`
	ShortName string       `json:"shortname"`
	Confirmed bool         `json:"confirmed"`
	Players   []FeedPlayer `json:"players"`
}

// FeedSquad 形态 b 的名单条目（按队名关联）
type FeedSquad struct {
	TeamName  string       `json:"teamName"`
	ShortName string       `json:"shortname"`
	Confirmed bool         `json:"confirmed"`
	Players   []FeedPlayer `json:"players"`
}

// FeedPlayer 上游球员，既可以是对象也可以是纯字符串
type FeedPlayer struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	BattingStyle string `json:"battingStyle"`
	Playing      bool   `json:"playing"`
}

// UnmarshalJSON 兼容 "Virat Kohli" 与 {"name":"Virat Kohli",...} 两种写法
func (p *FeedPlayer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*p = FeedPlayer{Name: name}
		return nil
	}
	type plain FeedPlayer
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = FeedPlayer(v)
	return nil
}

// FlexString 上游有时给数字有时给字符串（如 event_key、event_live）
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("期望字符串或数字，实际为 %s", string(data))
	}
	*f = FlexString(n.String())
	return nil
}

// ========== 数据源列表响应 ==========

// CricAPIResponse CricAPI 列表接口根响应
type CricAPIResponse struct {
	Status string            `json:"status"`
	Reason string            `json:"reason"`
	Data   []json.RawMessage `json:"data"`
}

// AllSportsResponse AllSportsAPI Livescore 根响应
type AllSportsResponse struct {
	Success FlexString        `json:"success"`
	Result  []json.RawMessage `json:"result"`
}
