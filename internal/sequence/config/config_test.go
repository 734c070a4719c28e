package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.AcquireTimeout() != 3*time.Second {
		t.Fatalf("AcquireTimeout = %s, want 3s", cfg.AcquireTimeout())
	}
	if cfg.BreakerOpenTimeout() != 5*time.Second {
		t.Fatalf("BreakerOpenTimeout = %s, want 5s", cfg.BreakerOpenTimeout())
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "unknown mode", mutate: func(cfg *Config) { cfg.App.Mode = "segmented" }, wantErr: "app.mode"},
		{name: "unknown authority", mutate: func(cfg *Config) { cfg.App.Authority = "etcd" }, wantErr: "app.authority"},
		{name: "redis without addr", mutate: func(cfg *Config) {
			cfg.App.Authority = AuthorityRedis
			cfg.Redis.Addr = ""
		}, wantErr: "redis.addr"},
		{name: "sql without table", mutate: func(cfg *Config) {
			cfg.App.Authority = AuthoritySQL
			cfg.SQL.Table = ""
		}, wantErr: "sql.table"},
		{name: "blank name", mutate: func(cfg *Config) { cfg.App.Name = "" }, wantErr: "app.name"},
		{name: "zero timeout", mutate: func(cfg *Config) { cfg.App.AcquireTimeoutMS = 0 }, wantErr: "acquire_timeout_ms"},
		{name: "zero batch", mutate: func(cfg *Config) { cfg.App.MaxBatchSize = 0 }, wantErr: "max_batch_size"},
		{name: "simple memory ok", mutate: func(cfg *Config) { cfg.App.Mode = ModeSimple }},
		{name: "sql ok", mutate: func(cfg *Config) { cfg.App.Authority = AuthoritySQL }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	if _, err := Load("/nonexistent/sequence.yaml"); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
