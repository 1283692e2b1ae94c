package stats

import (
	"context"
	"fmt"

	"BestXI/internal/model"
	"BestXI/internal/repository"
)

// DBSource player_stats 表
type DBSource struct {
	repo repository.StatsRepository
}

func NewDBSource(repo repository.StatsRepository) *DBSource {
	return &DBSource{repo: repo}
}

func (s *DBSource) Name() string { return "db:player_stats" }

func (s *DBSource) LoadRecords(ctx context.Context) ([]model.StatsRecord, error) {
	rows, err := s.repo.ListPlayerStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询player_stats失败: %w", err)
	}
	records := make([]model.StatsRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, model.StatsRecord{
			Player: r.Player,
			Team:   r.Team,
			Role:   r.Role,
			Points: r.Points,
		})
	}
	return records, nil
}

// Seed 把 from 中的记录写入 player_stats；同名记录以最后一条为准
func Seed(ctx context.Context, from Source, repo repository.StatsRepository) (int, error) {
	records, err := from.LoadRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDataSourceUnavailable, err)
	}

	index := make(map[string]int, len(records))
	rows := make([]*model.PlayerStat, 0, len(records))
	for _, rec := range records {
		row := &model.PlayerStat{Player: rec.Player, Team: rec.Team, Role: rec.Role, Points: rec.Points}
		if i, ok := index[rec.Player]; ok {
			rows[i] = row
			continue
		}
		index[rec.Player] = len(rows)
		rows = append(rows, row)
	}
	if err := repo.UpsertPlayerStats(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
