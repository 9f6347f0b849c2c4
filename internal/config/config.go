package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Limits    LimitsConfig
	Diff      DiffConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// LimitsConfig guards blueprint document inputs.
type LimitsConfig struct {
	MaxDocumentBytes int `envconfig:"MAX_DOCUMENT_BYTES" default:"1048576"`
	MaxGraphNodes    int `envconfig:"MAX_GRAPH_NODES" default:"5000"`
}

// DiffConfig holds semantic diff policy knobs. The rename threshold and the
// strict-modify switch are policy, not law; tests pin the defaults.
type DiffConfig struct {
	RenameThreshold float64 `envconfig:"DIFF_RENAME_THRESHOLD" default:"0.55"`
	StrictModify    bool    `envconfig:"DIFF_STRICT_MODIFY" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Limits: LimitsConfig{
			MaxDocumentBytes: 1 << 20,
			MaxGraphNodes:    5000,
		},
		Diff: DiffConfig{
			RenameThreshold: 0.55,
		},
	}
}
