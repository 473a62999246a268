package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := LoadConfig(home, "")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Home != home || cfg.LogDir != filepath.Join(home, "log") {
		t.Fatalf("paths %+v", cfg)
	}
	if !cfg.Cache.Enabled || cfg.Cache.MaxNodes != 4096 || !cfg.HashNames || cfg.LogLevel != "info" {
		t.Fatalf("defaults %+v", cfg)
	}
	if _, err := os.Stat(cfg.LogDir); err != nil {
		t.Fatalf("log dir not created: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	home := t.TempDir()
	data := []byte("log_level: debug\ncache:\n  enabled: false\n  max_nodes: 16\nhash_names: false\ngenerator_node: 7\n")
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(home, "")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.LogLevel != "debug" || cfg.Cache.Enabled || cfg.Cache.MaxNodes != 16 || cfg.HashNames || cfg.GeneratorNode != 7 {
		t.Fatalf("config not applied: %+v", cfg)
	}
	// untouched fields keep their defaults
	if cfg.Cache.Counters != 40960 {
		t.Fatalf("counters = %d", cfg.Cache.Counters)
	}
}

func TestLoadConfigEnvHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("IDSET_HOME", home)

	cfg, err := LoadConfig("", "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Home != home {
		t.Fatalf("home = %s, expected %s", cfg.Home, home)
	}
}

func TestLoadConfigMissingOverride(t *testing.T) {
	home := t.TempDir()
	if _, err := LoadConfig(home, filepath.Join(home, "nope.yaml")); err == nil {
		t.Fatalf("missing explicit config accepted")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "bad.yaml")
	if err := os.WriteFile(path, []byte("cache: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(home, path); err == nil {
		t.Fatalf("invalid yaml accepted")
	}
}
