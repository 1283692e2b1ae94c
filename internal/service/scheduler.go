package service

import (
	"context"
	"fmt"
	"time"

	"BestXI/internal/model"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const defaultRefreshTimeout = 2 * time.Minute

// Refresher 定时任务需要的刷新能力
type Refresher interface {
	Refresh(ctx context.Context, force bool) ([]model.PredictionResult, error)
}

// Scheduler 按 cron 表达式定时刷新预测
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	timeout   time.Duration
	logger    *logrus.Logger
}

func NewScheduler(refresher Refresher, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		timeout:   defaultRefreshTimeout,
		logger:    logger,
	}
}

// Start expr 为空时不启动定时任务
func (s *Scheduler) Start(expr string) error {
	if expr == "" {
		s.logger.Info("未配置刷新Cron，跳过定时刷新")
		return nil
	}
	if _, err := s.cron.AddFunc(expr, s.RunOnce); err != nil {
		return fmt.Errorf("注册定时刷新任务失败: %w", err)
	}
	s.cron.Start()
	s.logger.WithField("cron", expr).Info("定时刷新已启动")
	return nil
}

// RunOnce 执行一轮刷新；由 cron 调用，也用于启动时的首次刷新
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	results, err := s.refresher.Refresh(ctx, false)
	log := s.logger.WithFields(logrus.Fields{
		"matches":  len(results),
		"duration": time.Since(start).String(),
	})
	if err != nil {
		log.WithError(err).Warn("定时刷新完成（部分数据源不可用）")
		return
	}
	log.Info("定时刷新完成")
}

// Stop 等待正在执行的任务结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
