// Package config loads simulator defaults from an optional YAML file,
// layered beneath CLI flag overrides.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults matching SPEC_FULL.md's stated cycle count (§3) and memory depth
// (§5).
const (
	DefaultCycles   = 50
	DefaultMemDepth = 1024
)

// Config holds the knobs of the run subcommand; the batch subcommand's
// flags are not part of it. A zero-value
// Config is not directly usable; call WithDefaults after loading one from
// YAML and before applying flag overrides.
type Config struct {
	Cycles         int    `yaml:"cycles"`
	MemDepth       int    `yaml:"mem_depth"`
	IMemPath       string `yaml:"imem_path"`
	DMemPath       string `yaml:"dmem_path"`
	Format         string `yaml:"format"`
	CheckpointPath string `yaml:"checkpoint_path"`
}

// Load reads a YAML config file. An empty path is not an error — the
// caller gets a zero-value Config and should call WithDefaults. A path that
// cannot be read returns the read error.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithDefaults fills any zero-valued field with the spec's stated default.
func (c Config) WithDefaults() Config {
	if c.Cycles == 0 {
		c.Cycles = DefaultCycles
	}
	if c.MemDepth == 0 {
		c.MemDepth = DefaultMemDepth
	}
	if c.Format == "" {
		c.Format = "text"
	}
	return c
}
