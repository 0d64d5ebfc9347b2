// # internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Pairs    []Pair   `toml:"pairs"`
	Types    Types    `toml:"types"`
	Watch    Watch    `toml:"watch"`
	Exclude  Exclude  `toml:"exclude"`
	Baseline Baseline `toml:"baseline"`
	History  History  `toml:"history"`
	Alerts   Alerts   `toml:"alerts"`
}

// Pair is one code file checked against one documentation file.
type Pair struct {
	Code string `toml:"code"`
	Docs string `toml:"docs"`
}

type Types struct {
	// Aliases extend the built-in normalization table; raw token ->
	// canonical category. Config entries win over built-ins.
	Aliases map[string]string `toml:"aliases"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Baseline struct {
	Path string `toml:"path"`
}

type History struct {
	Path string `toml:"path"`
}

type Alerts struct {
	Terminal bool `toml:"terminal"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Config{Alerts: Alerts{Terminal: true}}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a usable config when no file is present; the pair
// comes from CLI arguments in that case.
func Default() *Config {
	cfg := &Config{Alerts: Alerts{Terminal: true}}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if cfg.Baseline.Path == "" {
		cfg.Baseline.Path = ".docwatch/baseline.toml"
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{".git", "node_modules", "target", "vendor"}
	}
}

// Validate checks that every configured pair points at existing files.
func (c *Config) Validate() error {
	for _, pair := range c.Pairs {
		for _, path := range []string{pair.Code, pair.Docs} {
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("configured pair file %q: %w (check the path in the config)", path, err)
			}
		}
	}
	return nil
}
