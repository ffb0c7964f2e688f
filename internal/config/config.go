// Package config loads the demo server configuration from a TOML
// file, writing one with default values on first run.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config carries the demo server settings.
type Config struct {
	// DataDir is the directory searched for traffic workbooks.
	DataDir string `toml:"data_dir"`
	// FilePrefix names workbook files as <prefix>_<year>.xlsx.
	FilePrefix string `toml:"file_prefix"`
	// ListenAddress is the HTTP listen address.
	ListenAddress string `toml:"listen_address"`
	// DatabasePath locates the persistent result cache. Empty disables
	// persistence; results then live only for the session.
	DatabasePath string `toml:"database_path"`
}

// Default returns the settings written on first run.
func Default() *Config {
	return &Config{
		DataDir:       "data",
		FilePrefix:    "traffic",
		ListenAddress: ":8080",
		DatabasePath:  "traffic_cache.db",
	}
}

// Load reads the configuration at path. A missing file is created with
// default values first. Fields left empty in an existing file fall
// back to their defaults, so a hand-trimmed file stays valid.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: path must not be empty")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("config: create %s: %w", path, err)
		}
		defer f.Close()
		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: write defaults: %w", err)
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.FilePrefix == "" {
		c.FilePrefix = def.FilePrefix
	}
	if c.ListenAddress == "" {
		c.ListenAddress = def.ListenAddress
	}
}
