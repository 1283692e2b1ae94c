package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"BestXI/internal/config"
	"BestXI/internal/model"

	"github.com/jackc/pgconn"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgreSQL invalid_catalog_name
const codeDatabaseMissing = "3D000"

// Open 连接 PostgreSQL（目标库不存在时先创建），配置连接池并迁移 player_stats / prediction_runs
func Open(ctx context.Context, cfg config.DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	db, err := gorm.Open(postgres.Open(cfg.DSN), gormConfig)
	if err != nil && isDatabaseMissing(err) {
		log.Info("目标数据库不存在，尝试自动创建…")
		created, e := EnsureDatabase(ctx, cfg.DSN)
		if e != nil {
			return nil, fmt.Errorf("创建数据库失败: %w", e)
		}
		if created {
			log.Info("数据库创建成功")
		}
		db, err = gorm.Open(postgres.Open(cfg.DSN), gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("连接PostgreSQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.WithContext(ctx).AutoMigrate(&model.PlayerStat{}, &model.PredictionRecord{}); err != nil {
		return nil, fmt.Errorf("数据库表结构迁移失败: %w", err)
	}
	return db, nil
}

// EnsureDatabase 通过 postgres 维护库检查并创建 DSN 指向的库，返回是否新建
func EnsureDatabase(ctx context.Context, dsn string) (bool, error) {
	admin, name, err := maintenanceDSN(dsn)
	if err != nil || name == "" {
		return false, err
	}

	db, err := sql.Open("pgx", admin)
	if err != nil {
		return false, err
	}
	defer db.Close()

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists); err != nil {
		return false, fmt.Errorf("查询数据库%s失败: %w", name, err)
	}
	if exists {
		return false, nil
	}
	if _, err := db.ExecContext(ctx, "CREATE DATABASE "+quoteIdent(name)); err != nil {
		return false, fmt.Errorf("创建数据库%s失败: %w", name, err)
	}
	return true, nil
}

// maintenanceDSN 把 URL 形式 DSN 的库名换成 postgres；目标库为空或本身就是 postgres 时 name 为空
func maintenanceDSN(dsn string) (admin, name string, err error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", "", fmt.Errorf("解析DSN失败: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", "", fmt.Errorf("自动建库需要 postgres:// 形式的DSN，实际为 %q", u.Scheme)
	}
	name = strings.TrimSpace(strings.TrimPrefix(u.Path, "/"))
	if name == "" || name == "postgres" {
		return "", "", nil
	}
	u.Path = "/postgres"
	return u.String(), name, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func isDatabaseMissing(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeDatabaseMissing
	}
	return strings.Contains(err.Error(), codeDatabaseMissing) || strings.Contains(err.Error(), "does not exist")
}
