package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"BestXI/internal/model"

	"gorm.io/gorm"
)

// PredictionRepository 每轮预测结果的持久化
type PredictionRepository interface {
	SaveRun(ctx context.Context, runID string, results []model.PredictionResult) error
	// LatestRun 最近一轮的结果（按原顺序），没有记录时返回空切片
	LatestRun(ctx context.Context) ([]model.PredictionResult, error)
	// PruneBefore 删除早于 cutoff 的批次
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type predictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) SaveRun(ctx context.Context, runID string, results []model.PredictionResult) error {
	if len(results) == 0 {
		return nil
	}
	rows := make([]*model.PredictionRecord, 0, len(results))
	for i, res := range results {
		xi, err := json.Marshal(res.XI)
		if err != nil {
			return fmt.Errorf("序列化阵容失败: %w, match_id: %s", err, res.MatchID)
		}
		rows = append(rows, &model.PredictionRecord{
			RunID:       runID,
			MatchID:     res.MatchID,
			MatchName:   res.MatchName,
			Feed:        res.Feed,
			Status:      string(res.Status),
			Kind:        string(res.Kind),
			Squad:       string(res.Squad),
			Policy:      res.Policy,
			XI:          xi,
			Reason:      res.Reason,
			Position:    i,
			GeneratedAt: res.GeneratedAt,
		})
	}

	// 开启事务：一轮结果要么全部写入，要么全部不写
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("开启事务失败: %w", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := tx.CreateInBatches(rows, 200).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("保存预测结果失败: %w, run_id: %s", err, runID)
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("提交事务失败: %w, run_id: %s", err, runID)
	}
	return nil
}

func (r *predictionRepository) LatestRun(ctx context.Context) ([]model.PredictionResult, error) {
	var latest model.PredictionRecord
	err := r.db.WithContext(ctx).Order("generated_at DESC, id DESC").First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []model.PredictionResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []*model.PredictionRecord
	if err := r.db.WithContext(ctx).Where("run_id = ?", latest.RunID).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	results := make([]model.PredictionResult, 0, len(rows))
	for _, row := range rows {
		res := model.PredictionResult{
			MatchID:     row.MatchID,
			MatchName:   row.MatchName,
			Feed:        row.Feed,
			Status:      model.MatchStatus(row.Status),
			Kind:        model.ResultKind(row.Kind),
			Squad:       model.SquadState(row.Squad),
			Policy:      row.Policy,
			Reason:      row.Reason,
			GeneratedAt: row.GeneratedAt,
		}
		if len(row.XI) > 0 {
			if err := json.Unmarshal(row.XI, &res.XI); err != nil {
				return nil, fmt.Errorf("解析阵容失败: %w, match_id: %s", err, row.MatchID)
			}
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *predictionRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("generated_at < ?", cutoff).Delete(&model.PredictionRecord{})
	return res.RowsAffected, res.Error
}
