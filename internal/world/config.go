package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSeed seeds every RNG subsystem when the host supplies none.
const DefaultSeed = "orbit-and-ore"

const (
	defaultStarCount         = 64
	defaultGalaxyRadius      = 600
	defaultMaxPlanetsPerStar = 4
)

// Config captures the tunables of a galaxy. Zero values mean "use the
// default"; call normalized before reading anything.
type Config struct {
	Seed              string  `yaml:"seed" json:"seed"`
	StarCount         int     `yaml:"starCount" json:"starCount"`
	GalaxyRadius      float64 `yaml:"galaxyRadius" json:"galaxyRadius"`
	MaxPlanetsPerStar int     `yaml:"maxPlanetsPerStar" json:"maxPlanetsPerStar"`
	SpawnSolSystem    *bool   `yaml:"spawnSolSystem" json:"spawnSolSystem"`
	CiviliansEnabled  *bool   `yaml:"civiliansEnabled" json:"civiliansEnabled"`
}

// DefaultConfig returns the configuration used when no file or flags are
// given.
func DefaultConfig() Config {
	return Config{}.normalized()
}

func (c Config) normalized() Config {
	if c.Seed == "" {
		c.Seed = DefaultSeed
	}
	if c.StarCount <= 0 {
		c.StarCount = defaultStarCount
	}
	if c.GalaxyRadius <= 0 {
		c.GalaxyRadius = defaultGalaxyRadius
	}
	if c.MaxPlanetsPerStar <= 0 {
		c.MaxPlanetsPerStar = defaultMaxPlanetsPerStar
	}
	if c.SpawnSolSystem == nil {
		c.SpawnSolSystem = boolPtr(true)
	}
	if c.CiviliansEnabled == nil {
		c.CiviliansEnabled = boolPtr(true)
	}
	return c
}

func boolPtr(v bool) *bool { return &v }

// SolSystemEnabled reports whether galaxy generation seeds the hand-authored
// starting system.
func (c Config) SolSystemEnabled() bool {
	return c.SpawnSolSystem == nil || *c.SpawnSolSystem
}

// CiviliansActive reports whether the civilian economy and ship AI run.
func (c Config) CiviliansActive() bool {
	return c.CiviliansEnabled == nil || *c.CiviliansEnabled
}

// LoadConfig reads a YAML config file and normalizes it. An empty path yields
// the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.normalized(), nil
}
