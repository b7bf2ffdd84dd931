package config

import (
	"time"

	"github.com/rickgao/futures-data/internal/model"
)

// Config is the root configuration for the futuresdata tools.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Request  RequestConfig  `yaml:"request"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Watch    WatchConfig    `yaml:"watch"`
	Log      LogConfig      `yaml:"log"`
}

// DataConfig locates the data tree.
type DataConfig struct {
	Root string `yaml:"root"` // Holds quik_data/ and daily_data/
}

// RequestConfig is the default contract for single-request commands.
// Literals decode straight into the closed enumerations.
type RequestConfig struct {
	Source model.SourceKind    `yaml:"source"`
	Symbol model.Instrument    `yaml:"symbol"`
	Month  model.DeliveryMonth `yaml:"month"`
	Year   int                 `yaml:"year"`
}

// IsSet reports whether any request field is present.
func (r RequestConfig) IsSet() bool {
	return r.Source != "" || r.Symbol != "" || r.Month != "" || r.Year != 0
}

// DataRequest builds the validated request.
func (r RequestConfig) DataRequest() (model.DataRequest, error) {
	return model.NewDataRequest(r.Source, r.Symbol, r.Month, model.YearDate(r.Year))
}

// DatabaseConfig holds the catalog database connection.
type DatabaseConfig struct {
	Catalog DBConfig `yaml:"catalog"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	MetricsPath     string        `yaml:"metrics_path"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// WatchConfig holds file watcher settings.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}
