package model

import (
	"time"

	"gorm.io/datatypes"
)

// PlayerStat 历史统计表（stats.source=db 时作为数据源）
type PlayerStat struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Player    string    `gorm:"column:player;type:varchar(128);uniqueIndex;not null;comment:球员姓名（关联键）"`
	Team      string    `gorm:"column:team;type:varchar(128);comment:球队"`
	Role      string    `gorm:"column:role;type:varchar(64);comment:角色"`
	Points    float64   `gorm:"column:points;type:numeric(12,4);default:0;comment:历史得分"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// PredictionRecord 每轮预测结果落库（一场比赛一行）
type PredictionRecord struct {
	ID          uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	RunID       string         `gorm:"column:run_id;type:varchar(64);index;not null;comment:预测批次ID"`
	MatchID     string         `gorm:"column:match_id;type:varchar(128);not null;comment:比赛ID"`
	MatchName   string         `gorm:"column:match_name;type:varchar(256);comment:比赛名称"`
	Feed        string         `gorm:"column:feed;type:varchar(32);comment:数据源"`
	Status      string         `gorm:"column:status;type:varchar(16);comment:比赛状态"`
	Kind        string         `gorm:"column:kind;type:varchar(16);not null;comment:结果类型：predicted/pending/skipped"`
	Squad       string         `gorm:"column:squad;type:varchar(16);comment:名单状态"`
	Policy      string         `gorm:"column:policy;type:varchar(16);comment:选人策略"`
	XI          datatypes.JSON `gorm:"column:xi;type:jsonb;comment:最佳阵容"`
	Reason      string         `gorm:"column:reason;type:text;comment:跳过原因"`
	Position    int            `gorm:"column:position;type:int;default:0;comment:本批次内顺序"`
	GeneratedAt time.Time      `gorm:"column:generated_at;type:timestamp;not null;comment:生成时间"`
	CreatedAt   time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

func (PlayerStat) TableName() string       { return "player_stats" }
func (PredictionRecord) TableName() string { return "predictions" }
