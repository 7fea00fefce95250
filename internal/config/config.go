// Package config loads harness settings from YAML with sane defaults.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/mimic/internal/env"
)

// Config holds everything the harness needs to run an agent.
type Config struct {
	Seed      int64           `yaml:"seed"`
	Ticks     int             `yaml:"ticks"`
	LogLevel  string          `yaml:"log_level"`
	TracePath string          `yaml:"trace_path"` // empty disables trace recording
	World     env.WorldConfig `yaml:"world"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Seed:     42,
		Ticks:    5000,
		LogLevel: "info",
		World:    env.DefaultWorldConfig(),
	}
}

// Load reads YAML from r, overlaying the defaults.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// LoadFile reads YAML from the given path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}
