package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"BestXI/internal/adapter"
	_ "BestXI/internal/adapter/all"
	"BestXI/internal/api"
	"BestXI/internal/cache"
	"BestXI/internal/config"
	"BestXI/internal/predictor"
	"BestXI/internal/push"
	"BestXI/internal/repository"
	"BestXI/internal/service"
	"BestXI/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// newFeedCache 启用 Redis 时使用 Redis，否则使用进程内缓存
func newFeedCache(ctx context.Context, cfg config.RedisConfig, logrusLogger *logrus.Logger) cache.FeedCache {
	if !cfg.Enabled {
		logrusLogger.Info("未启用Redis，使用进程内比赛缓存")
		return cache.NewMemoryCache(nil)
	}
	client, err := cache.NewRedisClient(cfg.URL)
	if err != nil {
		logrusLogger.Fatalf("初始化Redis失败: %v", err)
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logrusLogger.Warnf("Redis暂不可用，缓存读写失败时直接请求数据源: %v", err)
	} else {
		logrusLogger.Info("Redis连接成功")
	}
	return cache.NewRedisCache(client)
}

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logrusLogger := logrus.New()
	logrusLogger.SetLevel(logrus.InfoLevel)
	if cfg.Server.Mode == gin.DebugMode {
		logrusLogger.SetLevel(logrus.DebugLevel)
	}
	logrusLogger.Info("配置文件加载成功")
	policy, err := predictor.ParsePolicy(cfg.Prediction.Policy)
	if err != nil {
		logrusLogger.Fatalf("%v", err)
	}

	ctx := context.Background()

	// 3. 数据库（可选）：统计表与预测结果
	var (
		statsRepo      repository.StatsRepository
		predictionRepo repository.PredictionRepository
	)
	if cfg.Database.Enabled {
		db, err := repository.Open(ctx, cfg.Database, logrusLogger)
		if err != nil {
			logrusLogger.Fatalf("%v", err)
		}
		statsRepo = repository.NewStatsRepository(db)
		predictionRepo = repository.NewPredictionRepository(db)
		logrusLogger.Info("PostgreSQL连接成功，表结构检查完成")
	}

	// 4. 统计数据源
	var statsSource stats.Source = stats.NewCSVSource(cfg.Stats.Path, logrusLogger)
	if statsRepo != nil && cfg.Stats.SeedFromCSV {
		n, err := stats.Seed(ctx, statsSource, statsRepo)
		if err != nil {
			logrusLogger.Warnf("CSV写入player_stats失败: %v", err)
		} else {
			logrusLogger.Infof("CSV已写入player_stats，共%d名球员", n)
		}
	}
	if cfg.Stats.Source == "db" {
		statsSource = stats.NewDBSource(statsRepo)
	}
	statsHolder := stats.NewHolder(statsSource, logrusLogger)
	if err := statsHolder.Reload(ctx); err != nil {
		logrusLogger.Warnf("统计数据不可用，所有球员按0分处理: %v", err)
	}

	// 5. 比赛数据源与缓存
	registry := adapter.NewFeedRegistry(cfg, logrusLogger)
	feedService := service.NewFeedService(registry, newFeedCache(ctx, cfg.Redis, logrusLogger), cfg.Sync.CacheTTL, logrusLogger)

	// 每轮结果通过 WebSocket 推送给页面；新连接先收到当前结果
	runCtx, stopRun := context.WithCancel(ctx)
	defer stopRun()
	var predictionService *service.PredictionService
	hub := push.NewHub(func() interface{} { return predictionService.Snapshot() }, logrusLogger)
	go hub.Run(runCtx)

	predictionService = service.NewPredictionService(service.PredictionServiceOptions{
		Feeds:      feedService,
		Stats:      statsHolder,
		Normalizer: adapter.NewNormalizer(time.Now, logrusLogger),
		Policy:     policy,
		Repo:       predictionRepo,
		Publisher:  hub,
		Retention:  cfg.Sync.Retention,
		Logger:     logrusLogger,
	})
	if err := predictionService.LoadLatest(ctx); err != nil {
		logrusLogger.Warnf("%v", err)
	}

	// 6. 定时刷新
	scheduler := service.NewScheduler(predictionService, logrusLogger)
	if cfg.Sync.RefreshOnBoot {
		go scheduler.RunOnce()
	}
	if err := scheduler.Start(cfg.Sync.Cron); err != nil {
		logrusLogger.Fatalf("%v", err)
	}

	// 7. 配置Gin运行模式（从配置读取：debug/release）
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	logrusLogger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	// 8. 注册API路由
	api.RegisterRoutes(r, api.Handlers{
		Prediction: api.NewPredictionHandler(predictionService, logrusLogger),
		Sync:       api.NewSyncHandler(predictionService, statsHolder, logrusLogger),
		Health:     api.NewHealthHandler(feedService, predictionService),
		Live:       hub,
	}, true)

	// 9. 启动服务（从配置读取端口），收到退出信号后停止定时任务
	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.Port), Handler: r}
	go func() {
		logrusLogger.Infof("服务启动成功，端口：%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrusLogger.Fatalf("启动服务失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrusLogger.Info("收到退出信号，正在关闭服务…")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrusLogger.Errorf("关闭HTTP服务失败: %v", err)
	}
	scheduler.Stop()
	stopRun()
	logrusLogger.Info("服务已退出")
}
