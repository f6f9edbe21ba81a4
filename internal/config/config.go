// Package config loads process-wide settings from the environment,
// adapted from the teacher's internal/config.Config: same env-tag-driven
// caarlos0/env decoding plus godotenv/autoload for local .env files, now
// generalized from a fixed camera list to an arbitrary source-list file
// (see sources.go).
package config

import (
	"github.com/caarlos0/env/v9"
	_ "github.com/joho/godotenv/autoload"
)

// Settings holds the process-wide knobs every grabber worker shares.
type Settings struct {
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	SourcesFile  string `env:"SOURCES_FILE" envDefault:"sources.json"`
	HistorySize  int    `env:"HISTORY_SIZE" envDefault:"32"`
	MonitorPort  string `env:"MONITOR_PORT" envDefault:"8088"`
	WebhookURL   string `env:"DISCONNECT_WEBHOOK_URL"`
	CaptureDir   string `env:"CAPTURE_DIR" envDefault:"./captures"`
	FilenameTmpl string `env:"FILENAME_TEMPLATE" envDefault:"%n-%f.jpg"`
}

// Load parses Settings from the environment, populated beforehand from a
// local .env file if present (the blank godotenv/autoload import above).
func Load() (*Settings, error) {
	cfg := &Settings{}
	if err := env.Parse(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
