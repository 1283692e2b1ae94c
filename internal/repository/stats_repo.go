package repository

import (
	"context"
	"fmt"
	"time"

	"BestXI/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatsRepository player_stats 表仓储
type StatsRepository interface {
	ListPlayerStats(ctx context.Context) ([]*model.PlayerStat, error)
	// UpsertPlayerStats 以 player 为冲突键批量写入
	UpsertPlayerStats(ctx context.Context, rows []*model.PlayerStat) error
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// ListPlayerStats 按 id 顺序返回，保证同名时"后写覆盖"的语义稳定
func (r *statsRepository) ListPlayerStats(ctx context.Context) ([]*model.PlayerStat, error) {
	var rows []*model.PlayerStat
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statsRepository) UpsertPlayerStats(ctx context.Context, rows []*model.PlayerStat) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now()
	for _, row := range rows {
		row.UpdatedAt = now
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player"}},
		DoUpdates: clause.AssignmentColumns([]string{"team", "role", "points", "updated_at"}),
	}).CreateInBatches(rows, 500).Error; err != nil {
		return fmt.Errorf("写入player_stats失败: %w", err)
	}
	return nil
}
