package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rickgao/futures-data/internal/model"
)

func TestLoad(t *testing.T) {
	yaml := `
data:
  root: /srv/futures
request:
  source: daily
  symbol: Si
  month: Z
  year: 2023
database:
  catalog:
    host: localhost
    port: 5432
    name: futures
    user: testuser
    password: testpass
server:
  port: 9000
watch:
  enabled: true
  debounce: 250ms
log:
  level: debug
  format: json
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Data.Root != "/srv/futures" {
		t.Errorf("Data.Root = %q, want %q", cfg.Data.Root, "/srv/futures")
	}
	if cfg.Request.Source != model.SourceDaily {
		t.Errorf("Request.Source = %q, want %q", cfg.Request.Source, model.SourceDaily)
	}
	if cfg.Request.Symbol != model.InstrumentSi {
		t.Errorf("Request.Symbol = %q, want %q", cfg.Request.Symbol, model.InstrumentSi)
	}
	if cfg.Database.Catalog.Host != "localhost" {
		t.Errorf("Database.Catalog.Host = %q, want %q", cfg.Database.Catalog.Host, "localhost")
	}
	if !cfg.Watch.Enabled {
		t.Error("Watch.Enabled = false, want true")
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want %v", cfg.Watch.Debounce, 250*time.Millisecond)
	}

	req, err := cfg.Request.DataRequest()
	if err != nil {
		t.Fatalf("DataRequest error = %v", err)
	}
	if req.Contract() != "SiZ2023" {
		t.Errorf("Contract = %q, want %q", req.Contract(), "SiZ2023")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")
	t.Setenv("TEST_DATA_ROOT", "/mnt/data")

	yaml := `
data:
  root: ${TEST_DATA_ROOT}
database:
  catalog:
    host: localhost
    name: futures
    user: testuser
    password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Catalog.Password != "secret123" {
		t.Errorf("Database.Catalog.Password = %q, want %q", cfg.Database.Catalog.Password, "secret123")
	}
	if cfg.Data.Root != "/mnt/data" {
		t.Errorf("Data.Root = %q, want %q", cfg.Data.Root, "/mnt/data")
	}
}

func TestLoadInvalidEnum(t *testing.T) {
	yaml := `
request:
  source: weekly
  symbol: RI
  month: H
  year: 2024
`
	path := writeTempFile(t, yaml)

	_, err := Load(path)
	if !errors.Is(err, model.ErrInvalidEnumValue) {
		t.Errorf("Load error = %v, want ErrInvalidEnumValue", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "log:\n  format: json\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.Data.Root != DefaultDataRoot {
		t.Errorf("Data.Root = %q, want default %q", cfg.Data.Root, DefaultDataRoot)
	}
	if cfg.Database.Catalog.Port != DefaultDBPort {
		t.Errorf("Database.Catalog.Port = %d, want default %d", cfg.Database.Catalog.Port, DefaultDBPort)
	}
	if cfg.Database.Catalog.MaxConns != DefaultMaxConns {
		t.Errorf("Database.Catalog.MaxConns = %d, want default %d", cfg.Database.Catalog.MaxConns, DefaultMaxConns)
	}
	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("Server.Port = %d, want default %d", cfg.Server.Port, DefaultServerPort)
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("Watch.Debounce = %v, want default %v", cfg.Watch.Debounce, DefaultWatchDebounce)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "json")
	}
}

func TestLoadAndValidate(t *testing.T) {
	path := writeTempFile(t, "request:\n  source: quik\n  symbol: RI\n  month: H\n")

	_, err := LoadAndValidate(path)
	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("LoadAndValidate error = %v, want ErrValidation for missing year", err)
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Default()
		return *cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing data root",
			mutate:  func(c *Config) { c.Data.Root = "" },
			wantErr: "data.root is required",
		},
		{
			name:    "server port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port must be between 1 and 65535, got 70000",
		},
		{
			name:    "metrics path without slash",
			mutate:  func(c *Config) { c.Server.MetricsPath = "metrics" },
			wantErr: `server.metrics_path must start with /, got "metrics"`,
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.Watch.Debounce = -time.Second },
			wantErr: "watch.debounce must be >= 0",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: `log.level must be one of debug, info, warn, error, got "trace"`,
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: `log.format must be text or json, got "xml"`,
		},
		{
			name: "request with bad year",
			mutate: func(c *Config) {
				c.Request = RequestConfig{Source: model.SourceQuik, Symbol: model.InstrumentRI, Month: model.MonthH, Year: 24}
			},
			wantErr: "request: validate year: year 24 outside 1000..9999",
		},
		{
			name: "valid request",
			mutate: func(c *Config) {
				c.Request = RequestConfig{Source: model.SourceQuik, Symbol: model.InstrumentRI, Month: model.MonthH, Year: 2024}
			},
			wantErr: "",
		},
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func TestValidateCatalog(t *testing.T) {
	tests := []struct {
		name    string
		db      DBConfig
		wantErr string
	}{
		{
			name:    "missing host",
			db:      DBConfig{},
			wantErr: "database.catalog.host is required",
		},
		{
			name:    "missing password",
			db:      DBConfig{Host: "localhost", Name: "db", User: "user"},
			wantErr: "database.catalog.password is required",
		},
		{
			name:    "min_conns exceeds max_conns",
			db:      DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 2, MinConns: 5},
			wantErr: "database.catalog.min_conns (5) cannot exceed max_conns (2)",
		},
		{
			name:    "valid",
			db:      DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 4, MinConns: 1},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Database: DatabaseConfig{Catalog: tt.db}}
			err := cfg.ValidateCatalog()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateCatalog() unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ValidateCatalog() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
