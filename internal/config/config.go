// Package config loads cogsnet configuration from a YAML file with
// COGSNET_-prefixed environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all cogsnet configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Defaults RunDefaults    `koanf:"defaults"`
}

type ServerConfig struct {
	Bind string `koanf:"bind"`
	Port int    `koanf:"port"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"` // empty: resolved at runtime via store.DefaultDBPath()
}

// RunDefaults are the model parameters used by `cogsnet compute` when the
// matching flag is not given.
type RunDefaults struct {
	Forgetting       string  `koanf:"forgetting"`
	Mu               float64 `koanf:"mu"`
	Theta            float64 `koanf:"theta"`
	EdgeLifetime     int64   `koanf:"edge_lifetime"`
	SnapshotInterval int64   `koanf:"snapshot_interval"`
	Units            int64   `koanf:"units"`
	Delimiter        string  `koanf:"delimiter"`
}

// Default returns a Config with sensible defaults: exponential forgetting
// with the parameters from the CogSNet paper, hour units, semicolon files.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 38600,
		},
		Defaults: RunDefaults{
			Forgetting:       "exponential",
			Mu:               0.3,
			Theta:            0.1,
			EdgeLifetime:     72,
			SnapshotInterval: 0,
			Units:            3600,
			Delimiter:        ";",
		},
	}
}

// Load reads the config file at path (skipped when empty or missing), then
// applies COGSNET_* environment variables, then fills gaps with defaults.
// A double underscore separates key segments so single underscores survive
// inside key names: COGSNET_SERVER__PORT=8080 maps to server.port,
// COGSNET_DEFAULTS__EDGE_LIFETIME=24 to defaults.edge_lifetime.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("COGSNET_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "COGSNET_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
