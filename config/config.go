// Package config 负责服务配置的加载：yaml 文件为基底，环境变量覆盖。
//
// 配置是显式构造的值，经构造函数传入各组件——不提供全局单例。
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Config 是服务的完整配置。
// 字段优先级：环境变量 > yaml 文件 > 默认值。
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Rec      RecConfig      `yaml:"recommend"`
	Train    TrainConfig    `yaml:"train"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" env:"SHOPREC_HTTP_ADDR"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn" env:"SHOPREC_PG_DSN"`
}

type RedisConfig struct {
	Addr string `yaml:"addr" env:"SHOPREC_REDIS_ADDR"`
	DB   int    `yaml:"db" env:"SHOPREC_REDIS_DB"`
}

// SnapshotConfig 选择快照后端：
//   - "file"：本地文件（单实例部署）
//   - "redis"：Redis 单 key（多实例共享一份模型）
type SnapshotConfig struct {
	Backend  string        `yaml:"backend" env:"SHOPREC_SNAPSHOT_BACKEND"`
	Path     string        `yaml:"path" env:"SHOPREC_SNAPSHOT_PATH"`
	Key      string        `yaml:"key" env:"SHOPREC_SNAPSHOT_KEY"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"SHOPREC_SNAPSHOT_CACHE_TTL"`
}

// RecConfig 是在线打分侧的配置。
type RecConfig struct {
	// DefaultCount 是未指定请求数量时的推荐条数
	DefaultCount int `yaml:"default_count" env:"SHOPREC_REC_DEFAULT_COUNT"`

	// Blacklist 是运营排除的商品 ID
	Blacklist []int64 `yaml:"blacklist" env:"SHOPREC_REC_BLACKLIST" envSeparator:","`

	// BlacklistKey 是 KV 存储里的动态黑名单 key（可选）
	BlacklistKey string `yaml:"blacklist_key" env:"SHOPREC_REC_BLACKLIST_KEY"`

	// FilterExprs 是剔除候选的 CEL 表达式（可选），例如 "item.score < 0.1"
	FilterExprs []string `yaml:"filter_exprs"`
}

// TrainConfig 是离线训练的配置。
type TrainConfig struct {
	// Cron 是周期性训练的调度表达式（robfig/cron 语法），为空则只有手动触发
	Cron string `yaml:"cron" env:"SHOPREC_TRAIN_CRON"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"SHOPREC_LOG_LEVEL"`
}

// Load 读取配置：path 为空时跳过 yaml，只走环境变量与默认值。
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	// 环境变量覆盖 yaml 取值
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults 只补全 yaml 与环境变量都未设置的字段，
// 避免默认值覆盖 yaml 里的显式配置。
func (c *Config) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Snapshot.Backend == "" {
		c.Snapshot.Backend = "file"
	}
	if c.Snapshot.Path == "" {
		c.Snapshot.Path = "cache/rec_model.json"
	}
	if c.Snapshot.CacheTTL <= 0 {
		c.Snapshot.CacheTTL = 30 * time.Second
	}
	if c.Rec.DefaultCount <= 0 {
		c.Rec.DefaultCount = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
