package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"HTTP_ADDR", "DATABASE_URL", "JWT_SECRET", "ACCESS_TOKEN_TTL",
	"BCRYPT_COST", "STATS_INTERVAL", "LOG_LEVEL", "LOG_FILE",
}

// setBaseEnv clears every variable FromEnv reads; t.Setenv restores them afterwards.
func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "  s3cret  ")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.HTTPAddr != ":8000" {
		t.Fatalf("HTTPAddr = %q, want :8000", cfg.HTTPAddr)
	}
	if cfg.DatabaseURL != "task_manager.db" {
		t.Fatalf("DatabaseURL = %q, want task_manager.db", cfg.DatabaseURL)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("JWTSecret = %q, want trimmed secret", cfg.JWTSecret)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("AccessTokenTTL = %v, want 30m", cfg.AccessTokenTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.StatsInterval != time.Hour {
		t.Fatalf("StatsInterval = %v, want 1h", cfg.StatsInterval)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("DATABASE_URL", "data/tasks.db")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("STATS_INTERVAL", "0s")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" || cfg.DatabaseURL != "data/tasks.db" {
		t.Fatalf("unexpected addr/dsn: %+v", cfg)
	}
	if cfg.AccessTokenTTL != 5*time.Minute || cfg.BcryptCost != 4 || cfg.StatsInterval != 0 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}

func TestFromEnvValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "missing secret", env: map[string]string{}, wantErr: "JWT_SECRET"},
		{name: "blank secret", env: map[string]string{"JWT_SECRET": "   "}, wantErr: "JWT_SECRET"},
		{name: "zero ttl", env: map[string]string{"JWT_SECRET": "k", "ACCESS_TOKEN_TTL": "0s"}, wantErr: "ACCESS_TOKEN_TTL"},
		{name: "low cost", env: map[string]string{"JWT_SECRET": "k", "BCRYPT_COST": "2"}, wantErr: "BCRYPT_COST"},
		{name: "negative interval", env: map[string]string{"JWT_SECRET": "k", "STATS_INTERVAL": "-1m"}, wantErr: "STATS_INTERVAL"},
		{name: "bad duration", env: map[string]string{"JWT_SECRET": "k", "ACCESS_TOKEN_TTL": "soon"}, wantErr: "parse env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
