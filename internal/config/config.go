package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

type CacheConfig struct {
	Enabled  bool  `yaml:"enabled"`
	MaxNodes int64 `yaml:"max_nodes"`
	Counters int64 `yaml:"counters"`
}

type Config struct {
	Home          string      `yaml:"home"`
	LogDir        string      `yaml:"log_dir"`
	LogLevel      string      `yaml:"log_level"`
	Cache         CacheConfig `yaml:"cache"`
	HashNames     bool        `yaml:"hash_names"`
	GeneratorNode int64       `yaml:"generator_node"`
}

func defaults(home string) *Config {
	return &Config{
		Home:     home,
		LogDir:   filepath.Join(home, "log"),
		LogLevel: "info",
		Cache: CacheConfig{
			Enabled:  true,
			MaxNodes: 4096,
			Counters: 40960,
		},
		HashNames:     true,
		GeneratorNode: 1,
	}
}

// LoadConfig resolves the home directory and overlays config.yaml, if present,
// on top of the defaults.
func LoadConfig(homeOverride, configOverride string) (*Config, error) {
	paths, err := ResolvePaths(homeOverride, configOverride)
	if err != nil {
		return nil, err
	}

	cfg := defaults(paths.Home)

	if f, err := os.Open(paths.Config); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", paths.Config, err)
		}
	} else if configOverride != "" {
		// An explicitly named config file has to exist
		return nil, err
	}

	if cfg.LogDir == "" {
		cfg.LogDir = paths.LogDir
	}
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}
