package config

import (
	"context"
	"os"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/garland/internal/garland"
)

const (
	DefaultLength = 40

	// EnvPrefix is prepended to every env tag below.
	EnvPrefix = "GARLAND_"
)

// Config is the garland run configuration. Seed 0 means time based.
type Config struct {
	Length int   `yaml:"length" env:"LENGTH,overwrite"`
	Seed   int64 `yaml:"seed" env:"SEED,overwrite"`
}

func DefaultConfig() *Config {
	return &Config{
		Length: DefaultLength,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FromEnv overrides fields whose GARLAND_* variable is set. A nil lookuper
// reads the process environment.
func (c *Config) FromEnv(ctx context.Context, l envconfig.Lookuper) error {
	if l == nil {
		l = envconfig.OsLookuper()
	}
	return envconfig.ProcessWith(ctx, c, envconfig.PrefixLookuper(EnvPrefix, l))
}

// Validate rejects settings that cannot produce a garland.
func (c *Config) Validate() error {
	if c.Length < 1 {
		return &garland.ConfigError{Field: "length", Value: c.Length, Reason: "must be greater than 0"}
	}
	return nil
}
