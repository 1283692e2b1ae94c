package model

// StatsRecord 历史统计表中的一行（按 Player 精确匹配）
type StatsRecord struct {
	Player string  `json:"player"`
	Team   string  `json:"team,omitempty"`
	Role   string  `json:"role,omitempty"`
	Points float64 `json:"points"`
}
