package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"BestXI/internal/model"

	"github.com/sirupsen/logrus"
)

// ErrSchemaMismatch 单条比赛记录不符合任何已知形态
var ErrSchemaMismatch = errors.New("比赛记录形态不匹配")

// 状态文本包含以下任一标记即视为已结束
var completionMarkers = []string{"completed", "result", "won by"}

const (
	dateLayout = "2006-01-02"
	gmtLayout  = "2006-01-02T15:04:05"
)

// Normalizer 归一化边界：任意上游形态 → model.Match
type Normalizer struct {
	now    func() time.Time
	logger *logrus.Logger
}

// NewNormalizer now 为 nil 时使用 time.Now；"今天"按 now 所在时区计算
func NewNormalizer(now func() time.Time, logger *logrus.Logger) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now, logger: logger}
}

// Normalize 解析失败、缺字段、甚至 panic 都只返回 ErrSchemaMismatch，不会影响其它比赛
func (n *Normalizer) Normalize(raw model.RawMatch) (m *model.Match, err error) {
	defer func() {
		if p := recover(); p != nil {
			m = nil
			err = fmt.Errorf("%w: %v", ErrSchemaMismatch, p)
		}
	}()

	payload := bytes.TrimSpace(raw.Payload)
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: 空记录", ErrSchemaMismatch)
	}
	var fm model.FeedMatch
	if err := json.Unmarshal(payload, &fm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	teams, err := buildTeams(&fm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	unassigned := buildUnassigned(&fm, teams)

	now := n.now()
	date, ok := parseMatchDate(now.Location(),
		dateField{value: fm.Date},
		dateField{value: fm.DateTimeGMT, gmt: true},
		dateField{value: fm.EventDateStart},
	)
	if !ok {
		n.logger.WithFields(logrus.Fields{
			"feed": raw.Feed,
			"id":   fm.ID,
		}).Debug("比赛日期缺失或无法解析，按非今日处理")
	}

	statusText := strings.TrimSpace(fm.Status)
	if statusText == "" {
		statusText = strings.TrimSpace(fm.EventStatus)
	}
	started := fm.MatchStarted || strings.TrimSpace(string(fm.EventLive)) == "1"
	today := ok && date.Format(dateLayout) == now.Format(dateLayout)

	match := &model.Match{
		ID:             matchID(&fm, teams, date),
		Name:           matchName(&fm, teams),
		Feed:           raw.Feed,
		Date:           date,
		StatusText:     statusText,
		Started:        started,
		Status:         classifyStatus(today, started, statusText),
		Teams:          teams,
		Unassigned:     unassigned,
		SquadAnnounced: len(teams[0].Squad) > 0 || len(teams[1].Squad) > 0 || len(unassigned.Squad) > 0,
	}
	return match, nil
}

// classifyStatus 今日未开赛 → upcoming；已开赛且状态文本无结束标记 → live；其余 → completed
func classifyStatus(today, started bool, statusText string) model.MatchStatus {
	if today && !started {
		return model.MatchUpcoming
	}
	if started && !hasCompletionMarker(statusText) {
		return model.MatchLive
	}
	return model.MatchCompleted
}

func hasCompletionMarker(statusText string) bool {
	s := strings.ToLower(statusText)
	for _, marker := range completionMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// buildTeams 统一三种形态：先确定两支球队，再按形态取名单
func buildTeams(fm *model.FeedMatch) ([2]model.Team, error) {
	var teams [2]model.Team

	switch {
	case len(fm.TeamInfo) == 2:
		for i, ti := range fm.TeamInfo {
			teams[i] = teamFromInfo(ti)
		}
	case len(fm.Teams) == 2:
		// teamInfo 可能只给了一支球队，按队名补齐简称与名单
		for i, name := range fm.Teams {
			name = strings.TrimSpace(name)
			teams[i] = model.Team{Name: name}
			for _, ti := range fm.TeamInfo {
				if strings.EqualFold(strings.TrimSpace(ti.Name), name) {
					teams[i] = teamFromInfo(ti)
					break
				}
			}
		}
	case fm.EventHomeTeam != "" || fm.EventAwayTeam != "":
		home := strings.TrimSpace(fm.EventHomeTeam)
		away := strings.TrimSpace(fm.EventAwayTeam)
		teams[0] = model.Team{Name: home, Squad: convertPlayers(fm.EventHomeSquad, home)}
		teams[1] = model.Team{Name: away, Squad: convertPlayers(fm.EventAwaySquad, away)}
	default:
		return teams, fmt.Errorf("无法确定两支球队（teamInfo=%d, teams=%d）", len(fm.TeamInfo), len(fm.Teams))
	}

	for i := range teams {
		if teams[i].Name == "" {
			return teams, fmt.Errorf("第 %d 支球队缺少名称", i+1)
		}
	}

	// 形态 b：名单在单独的 squads 列表里，按队名关联
	for i := range teams {
		if len(teams[i].Squad) > 0 {
			continue
		}
		sq, ok := findSquad(fm.Squads, teams[i])
		if !ok {
			continue
		}
		teams[i].Squad = convertPlayers(sq.Players, teams[i].Name)
		teams[i].Confirmed = teams[i].Confirmed || sq.Confirmed
		if teams[i].ShortName == "" {
			teams[i].ShortName = strings.TrimSpace(sq.ShortName)
		}
	}

	if fm.LineupConfirmed {
		teams[0].Confirmed = true
		teams[1].Confirmed = true
	}
	return teams, nil
}

// buildUnassigned 形态 c 两队都没有分队名单时，使用不分队的 squad；无法判断所属球队，球员 Team 留空
func buildUnassigned(fm *model.FeedMatch, teams [2]model.Team) model.Team {
	if len(fm.TeamInfo) == 2 || len(fm.Teams) == 2 {
		return model.Team{}
	}
	if len(teams[0].Squad) > 0 || len(teams[1].Squad) > 0 {
		return model.Team{}
	}
	squad := convertPlayers(fm.Squad, "")
	if len(squad) == 0 {
		return model.Team{}
	}
	return model.Team{Squad: squad, Confirmed: fm.LineupConfirmed}
}

// findSquad 队名精确匹配优先，其次忽略大小写，最后按简称
func findSquad(squads []model.FeedSquad, team model.Team) (model.FeedSquad, bool) {
	for _, sq := range squads {
		if strings.TrimSpace(sq.TeamName) == team.Name {
			return sq, true
		}
	}
	for _, sq := range squads {
		if strings.EqualFold(strings.TrimSpace(sq.TeamName), team.Name) {
			return sq, true
		}
	}
	if team.ShortName != "" {
		for _, sq := range squads {
			if strings.EqualFold(strings.TrimSpace(sq.ShortName), team.ShortName) {
				return sq, true
			}
		}
	}
	return model.FeedSquad{}, false
}

func teamFromInfo(ti model.FeedTeamInfo) model.Team {
	name := strings.TrimSpace(ti.Name)
	return model.Team{
		Name:      name,
		ShortName: strings.TrimSpace(ti.ShortName),
		Confirmed: ti.Confirmed,
		Squad:     convertPlayers(ti.Players, name),
	}
}

func convertPlayers(in []model.FeedPlayer, team string) []model.Player {
	out := make([]model.Player, 0, len(in))
	for _, p := range in {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		out = append(out, model.Player{
			Name:         name,
			Team:         team,
			Role:         strings.TrimSpace(p.Role),
			BattingStyle: strings.TrimSpace(p.BattingStyle),
			Playing:      p.Playing,
		})
	}
	return out
}

// dateField 候选日期字段；gmt 为 true 时带时刻的值按 UTC 解析后换算到本地时区
type dateField struct {
	value string
	gmt   bool
}

// parseMatchDate 依次尝试每个非空候选，解析失败则继续下一个；只保留日期部分
func parseMatchDate(loc *time.Location, candidates ...dateField) (time.Time, bool) {
	for _, c := range candidates {
		v := strings.TrimSpace(c.value)
		if v == "" {
			continue
		}
		if c.gmt {
			if t, err := time.Parse(gmtLayout, v); err == nil {
				y, m, d := t.In(loc).Date()
				return time.Date(y, m, d, 0, 0, 0, 0, loc), true
			}
		}
		if len(v) > len(dateLayout) {
			v = v[:len(dateLayout)]
		}
		if t, err := time.ParseInLocation(dateLayout, v, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func matchID(fm *model.FeedMatch, teams [2]model.Team, date time.Time) string {
	if id := strings.TrimSpace(fm.ID); id != "" {
		return id
	}
	if key := strings.TrimSpace(string(fm.EventKey)); key != "" {
		return key
	}
	return buildMatchKey(teams[0].Name, teams[1].Name, date)
}

func matchName(fm *model.FeedMatch, teams [2]model.Team) string {
	if name := strings.TrimSpace(fm.Name); name != "" {
		return name
	}
	return teams[0].Name + " vs " + teams[1].Name
}
