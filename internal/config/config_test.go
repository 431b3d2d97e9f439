package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"melking/internal/core"
)

func validConfig() Config {
	return Config{
		Port:           "8081",
		RequestTimeout: 7 * time.Second,
		DataBackend:    BackendMemory,
		CacheTTL:       30 * time.Second,
		Calendar:       "jalali",
		LogLevel:       "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid memory backend config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid sqlite backend config",
			mutate: func(c *Config) {
				c.DataBackend = BackendSQLite
				c.SQLiteDBPath = filepath.Join(t.TempDir(), "nested", "melking.db")
			},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [memory sqlite]",
		},
		{
			name: "sqlite backend missing database path",
			mutate: func(c *Config) {
				c.DataBackend = BackendSQLite
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "unknown calendar",
			mutate:      func(c *Config) { c.Calendar = "hijri" },
			wantErr:     true,
			errorString: "invalid calendar 'hijri'",
		},
		{
			name:        "negative cache ttl",
			mutate:      func(c *Config) { c.CacheTTL = -time.Second },
			wantErr:     true,
			errorString: "must not be negative",
		},
		{
			name:        "cache ttl too long",
			mutate:      func(c *Config) { c.CacheTTL = 2 * time.Hour },
			wantErr:     true,
			errorString: "must be at most 1 hour",
		},
		{
			name:        "request timeout too short",
			mutate:      func(c *Config) { c.RequestTimeout = time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 100ms",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:   "zero cache ttl disables caching",
			mutate: func(c *Config) { c.CacheTTL = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Config.Validate() error = %q, want it to contain %q", err, tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.Calendar = "hijri"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid port") || !strings.Contains(err.Error(), "invalid calendar") {
		t.Errorf("expected both problems reported, got %q", err)
	}
}

func TestLoad(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_BACKEND", "SQLITE_DB_PATH", "SEED_FILE", "CACHE_TTL", "CALENDAR", "LOG_LEVEL", "REQUEST_TIMEOUT"} {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()
		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.DataBackend != BackendMemory {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "./data/melking.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/melking.db", cfg.SQLiteDBPath)
		}
		if cfg.CacheTTL != 30*time.Second {
			t.Errorf("Load() CacheTTL = %v, want 30s", cfg.CacheTTL)
		}
		if cfg.CalendarSystem() != core.Jalali {
			t.Errorf("Load() calendar = %v, want jalali", cfg.Calendar)
		}
		if cfg.Level() != slog.LevelInfo {
			t.Errorf("Load() level = %v, want info", cfg.Level())
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DATA_BACKEND", "sqlite")
		t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		t.Setenv("CACHE_TTL", "1m")
		t.Setenv("CALENDAR", "gregorian")
		t.Setenv("LOG_LEVEL", "debug")

		cfg := Load()
		if cfg.Port != "9090" || cfg.DataBackend != "sqlite" || cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() = %+v", cfg)
		}
		if cfg.CacheTTL != time.Minute {
			t.Errorf("Load() CacheTTL = %v, want 1m", cfg.CacheTTL)
		}
		if cfg.CalendarSystem() != core.Gregorian {
			t.Errorf("Load() calendar = %v, want gregorian", cfg.Calendar)
		}
		if cfg.Level() != slog.LevelDebug {
			t.Errorf("Load() level = %v, want debug", cfg.Level())
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "invalid")
		cfg := Load()
		if cfg.CacheTTL != 30*time.Second {
			t.Errorf("Load() CacheTTL = %v, want 30s (default for invalid input)", cfg.CacheTTL)
		}
	})
}
