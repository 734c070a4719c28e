package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/go-sequence-service/pkg/idgen"
	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

const (
	ModeCaching = "caching"
	ModeSimple  = "simple"

	AuthorityMemory = "memory"
	AuthorityRedis  = "redis"
	AuthoritySQL    = "sql"
)

// Config holds Sequence Service configuration
type Config struct {
	Server  ServerConfig      `json:"server" yaml:"server"`
	Health  HealthConfig      `json:"health" yaml:"health"`
	App     AppConfig         `json:"app" yaml:"app"`
	IDs     idgen.RangeConfig `json:"ids" yaml:"ids"`
	Redis   RedisConfig       `json:"redis" yaml:"redis"`
	SQL     SQLConfig         `json:"sql" yaml:"sql"`
	Breaker BreakerConfig     `json:"breaker" yaml:"breaker"`
	Logger  logger.Config     `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type HealthConfig struct {
	Addr string `json:"addr" yaml:"addr"` // gRPC health listener, empty disables it
}

type AppConfig struct {
	Name              string   `json:"name" yaml:"name"`
	Mode              string   `json:"mode" yaml:"mode"`           // "caching", "simple"
	Authority         string   `json:"authority" yaml:"authority"` // "memory", "redis", "sql"
	AcquireTimeoutMS  int      `json:"acquire_timeout_ms" yaml:"acquire_timeout_ms"`
	MaxRefillAttempts int      `json:"max_refill_attempts" yaml:"max_refill_attempts"`
	MaxBatchSize      int      `json:"max_batch_size" yaml:"max_batch_size"`
	WarmupNames       []string `json:"warmup_names" yaml:"warmup_names"`               // application scope
	WarmupGlobalNames []string `json:"warmup_global_names" yaml:"warmup_global_names"` // global scope
	WarmupWorkers     int      `json:"warmup_workers" yaml:"warmup_workers"`
}

type RedisConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`
}

type SQLConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	DSN    string `json:"dsn" yaml:"dsn"`
	Table  string `json:"table" yaml:"table"`
}

type BreakerConfig struct {
	FailureThreshold int `json:"failure_threshold" yaml:"failure_threshold"`
	OpenTimeoutMS    int `json:"open_timeout_ms" yaml:"open_timeout_ms"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8070",
		},
		Health: HealthConfig{
			Addr: ":8071",
		},
		App: AppConfig{
			Name:              "sequence",
			Mode:              ModeCaching,
			Authority:         AuthorityMemory,
			AcquireTimeoutMS:  3000,
			MaxRefillAttempts: idgen.DefaultMaxRefillAttempts,
			MaxBatchSize:      1000,
			WarmupWorkers:     4,
		},
		IDs: idgen.RangeConfig{
			PermitUnlimited: true,
			DefaultDelta:    idgen.DefaultDelta,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "idgen",
		},
		SQL: SQLConfig{
			Driver: "sqlite",
			DSN:    "sequence.db?_pragma=busy_timeout(5000)",
			Table:  "id_sequences",
		},
		Breaker: BreakerConfig{
			FailureThreshold: 3,
			OpenTimeoutMS:    5000,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// AcquireTimeout returns the range authority deadline.
func (c *Config) AcquireTimeout() time.Duration {
	return time.Duration(c.App.AcquireTimeoutMS) * time.Millisecond
}

// BreakerOpenTimeout returns how long the authority breaker stays open.
func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.Breaker.OpenTimeoutMS) * time.Millisecond
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.App.Mode {
	case ModeCaching, ModeSimple:
	default:
		return fmt.Errorf("unknown app.mode %q", c.App.Mode)
	}

	switch c.App.Authority {
	case AuthorityMemory:
	case AuthorityRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis authority")
		}
	case AuthoritySQL:
		if c.SQL.Driver == "" || c.SQL.DSN == "" || c.SQL.Table == "" {
			return fmt.Errorf("sql.driver, sql.dsn and sql.table are required for the sql authority")
		}
	default:
		return fmt.Errorf("unknown app.authority %q", c.App.Authority)
	}

	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.App.AcquireTimeoutMS <= 0 {
		return fmt.Errorf("app.acquire_timeout_ms must be positive, got %d", c.App.AcquireTimeoutMS)
	}
	if c.App.MaxBatchSize <= 0 {
		return fmt.Errorf("app.max_batch_size must be positive, got %d", c.App.MaxBatchSize)
	}
	return nil
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "sequence", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	if err := parsedCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
