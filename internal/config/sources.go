package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/nuclio/errors"

	"github.com/mjpeggrab/mjpeggrab/internal/grabstatus"
	"github.com/mjpeggrab/mjpeggrab/internal/source"
)

// SourceConfig describes one configured capture source, per spec.md §6:
// a list of records tagged by type, with file- and network-specific
// fields. encoding/json decodes the raw list (a boundary concern, stdlib
// is idiomatic here); mapstructure then gives each record a typed shape,
// grounded on sink/mjpeg and trigger/mjpeg's factory.go
// mapstructure.Decode(configuration, config) pattern.
type SourceConfig struct {
	Type string `mapstructure:"type"`
	Name string `mapstructure:"name"`

	// File source fields.
	File string `mapstructure:"file"`
	Usec int    `mapstructure:"usec"`

	// Network source fields.
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Path string `mapstructure:"path"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
}

// LoadSources reads a JSON array of source records from path and decodes
// each into a SourceConfig.
func LoadSources(path string) ([]SourceConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(grabstatus.ErrInvalidConfig, err.Error())
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrap(grabstatus.ErrInvalidConfig, err.Error())
	}

	configs := make([]SourceConfig, 0, len(records))
	for _, record := range records {
		var cfg SourceConfig
		if err := mapstructure.Decode(record, &cfg); err != nil {
			return nil, errors.Wrap(grabstatus.ErrInvalidConfig, err.Error())
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// BuildSource constructs the runtime source.Source described by cfg.
func BuildSource(cfg SourceConfig) (source.Source, error) {
	name := cfg.Name
	if name == "" {
		name = "(unnamed)"
	}

	switch cfg.Type {
	case "file":
		delay := time.Duration(cfg.Usec) * time.Microsecond
		return source.NewFile(name, cfg.File, delay), nil
	case "network":
		return source.NewNetwork(name, cfg.Host, cfg.Port, cfg.Path, cfg.User, cfg.Pass), nil
	default:
		return nil, errors.Wrap(grabstatus.ErrInvalidConfig, "unknown source type: "+cfg.Type)
	}
}
