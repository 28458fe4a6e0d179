package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Uploads  UploadsConfig  `toml:"uploads"`
	Instance InstanceConfig `toml:"instance"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type DatabaseConfig struct {
	RetryPath  string `toml:"retry_path"`
	ManualPath string `toml:"manual_path"`
	WaiverPath string `toml:"waiver_path"`
}

type UploadsConfig struct {
	Dir         string `toml:"dir"`
	MaxUploadMB int64  `toml:"max_upload_mb"`
}

type InstanceConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Database: DatabaseConfig{
			RetryPath:  "data/retry.db",
			ManualPath: "data/manual.db",
			WaiverPath: "data/waiver.db",
		},
		Uploads: UploadsConfig{
			Dir:         "data/uploads",
			MaxUploadMB: 32,
		},
		Instance: InstanceConfig{
			ID:   "local",
			Name: "certtrack-local",
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
