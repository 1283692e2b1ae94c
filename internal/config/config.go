package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	minCacheTTL = 60 * time.Second
	maxCacheTTL = 600 * time.Second

	defaultRetention = 24 * time.Hour
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server     ServerConfig          `mapstructure:"server"`     // 服务器配置
	Database   DatabaseConfig        `mapstructure:"database"`   // PostgreSQL配置
	Redis      RedisConfig           `mapstructure:"redis"`      // 比赛数据缓存
	Stats      StatsConfig           `mapstructure:"stats"`      // 历史统计数据源
	Prediction PredictionConfig      `mapstructure:"prediction"` // 选人策略
	Sync       SyncConfig            `mapstructure:"sync"`       // 刷新调度配置
	Feeds      map[string]FeedConfig `mapstructure:"feeds"`      // 多数据源独立配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// DatabaseConfig PostgreSQL数据库配置
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`           // 关闭时不落库，统计数据只能来自CSV
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// RedisConfig 缓存配置，未启用时使用进程内缓存
type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

// StatsConfig 历史统计数据源
type StatsConfig struct {
	Source      string `mapstructure:"source"`        // csv / db
	Path        string `mapstructure:"path"`          // CSV 路径
	SeedFromCSV bool   `mapstructure:"seed_from_csv"` // 启动时把 CSV 写入 player_stats 表
}

// PredictionConfig 选人策略：score / role，由 predictor.ParsePolicy 解析，空值为 score
type PredictionConfig struct {
	Policy string `mapstructure:"policy"`
}

// SyncConfig 刷新调度配置
type SyncConfig struct {
	Cron          string        `mapstructure:"cron"`            // 自动刷新Cron表达式，空则不自动刷新
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`       // 比赛数据缓存时间（60s~600s）
	EnabledFeeds  []string      `mapstructure:"enabled_feeds"`   // 启用的数据源列表（顺序即输出顺序）
	RefreshOnBoot bool          `mapstructure:"refresh_on_boot"` // 启动后立即刷新一次
	Retention     time.Duration `mapstructure:"retention"`       // 预测结果保留时长，超出的批次在保存后清理
}

// FeedConfig 单个比赛数据源的独立配置
type FeedConfig struct {
	BaseURL            string        `mapstructure:"base_url"`             // API基础地址
	APIKey             string        `mapstructure:"api_key"`              // API Key
	Timeout            int           `mapstructure:"timeout"`              // 请求超时（秒）
	Proxy              string        `mapstructure:"proxy"`                // 代理地址
	FailureThreshold   uint32        `mapstructure:"failure_threshold"`    // 连续失败多少次后熔断
	BreakerTimeout     int           `mapstructure:"breaker_timeout"`      // 熔断后多久尝试恢复（秒）
	MinRequestInterval time.Duration `mapstructure:"min_request_interval"` // 两次请求的最小间隔，0 为不限流
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	return LoadConfigFrom("./config")
}

// LoadConfigFrom 从指定目录加载 config.yaml
func LoadConfigFrom(dir string) (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("stats.source", "csv")
	v.SetDefault("stats.path", "player_stats.csv")
	v.SetDefault("sync.cache_ttl", "60s")
	v.SetDefault("sync.retention", "24h")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if cfg.Feeds == nil {
		cfg.Feeds = make(map[string]FeedConfig)
	}
	if f, ok := cfg.Feeds["cricapi"]; ok {
		if v := os.Getenv("CRICAPI_KEY"); v != "" {
			f.APIKey = v
		}
		if v := os.Getenv("CRICAPI_PROXY"); v != "" {
			f.Proxy = v
		}
		cfg.Feeds["cricapi"] = f
	}
	if f, ok := cfg.Feeds["allsports"]; ok {
		if v := os.Getenv("ALLSPORTS_KEY"); v != "" {
			f.APIKey = v
		}
		cfg.Feeds["allsports"] = f
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
}

// Validate 收紧缓存时间并检查数据源组合
func (c *Config) Validate() error {
	if c.Sync.CacheTTL < minCacheTTL {
		c.Sync.CacheTTL = minCacheTTL
	}
	if c.Sync.CacheTTL > maxCacheTTL {
		c.Sync.CacheTTL = maxCacheTTL
	}

	if c.Sync.Retention <= 0 {
		c.Sync.Retention = defaultRetention
	}

	c.Stats.Source = strings.ToLower(strings.TrimSpace(c.Stats.Source))
	switch c.Stats.Source {
	case "", "csv":
		c.Stats.Source = "csv"
	case "db":
		if !c.Database.Enabled {
			return fmt.Errorf("stats.source=db 需要启用 database")
		}
	default:
		return fmt.Errorf("未知的统计数据源: %s（可选 csv/db）", c.Stats.Source)
	}

	for _, name := range c.Sync.EnabledFeeds {
		if _, ok := c.Feeds[name]; !ok {
			return fmt.Errorf("启用的数据源 %s 缺少 feeds 配置", name)
		}
	}
	return nil
}
