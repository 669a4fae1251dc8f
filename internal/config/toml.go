// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Filters FiltersConfig `toml:"filters"`
	Display DisplayConfig `toml:"display"`
	Log     LogConfig     `toml:"log"`
}

// FiltersConfig maps the default filter criteria.
type FiltersConfig struct {
	Kind *string `toml:"kind"`
	Club *string `toml:"club"`
	From *string `toml:"from"`
	To   *string `toml:"to"`
}

// DisplayConfig maps plot settings.
type DisplayConfig struct {
	PlotHeight *int  `toml:"plot-height"`
	Color      *bool `toml:"color"`
}

// LogConfig maps the debug log settings.
type LogConfig struct {
	File  *string `toml:"file"`
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
