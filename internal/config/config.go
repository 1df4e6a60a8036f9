package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/san-kum/tilechain/internal/board"
	"github.com/san-kum/tilechain/internal/markov"
	"github.com/san-kum/tilechain/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTurns      = 80
	DefaultDelay      = 50
	DefaultTolerance  = 1e-8
	DefaultPlotHeight = 15
	DefaultPlotWidth  = 80
	DefaultPlotMax    = 0.1

	// EnvPrefix namespaces every environment override.
	EnvPrefix = "TILECHAIN_"
)

type Config struct {
	Turns     int        `yaml:"turns" env:"TURNS"`
	Start     int        `yaml:"start" env:"START"`
	Delay     int        `yaml:"delay_ms" env:"DELAY_MS"`
	Limit     bool       `yaml:"limit" env:"LIMIT"`
	Tolerance float64    `yaml:"tolerance" env:"TOLERANCE"`
	Plot      PlotConfig `yaml:"plot" envPrefix:"PLOT_"`
}

type PlotConfig struct {
	Height int     `yaml:"height" env:"HEIGHT"`
	Width  int     `yaml:"width" env:"WIDTH"`
	Max    float64 `yaml:"max" env:"MAX"`
}

func DefaultConfig() *Config {
	return &Config{
		Turns:     DefaultTurns,
		Start:     board.Go,
		Delay:     DefaultDelay,
		Limit:     true,
		Tolerance: DefaultTolerance,
		Plot: PlotConfig{
			Height: DefaultPlotHeight,
			Width:  DefaultPlotWidth,
			Max:    DefaultPlotMax,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base. Keys missing from the file keep the
// value from base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from TILECHAIN_* environment variables. Unset
// variables leave the field alone.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Turns < 0 {
		return fmt.Errorf("turns must be non-negative, got %d", c.Turns)
	}
	if c.Start < 0 || c.Start >= board.Size {
		return fmt.Errorf("start tile must be in [0, %d], got %d", board.Size-1, c.Start)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must be non-negative, got %d", c.Delay)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	if c.Plot.Height <= 0 || c.Plot.Width <= 0 {
		return fmt.Errorf("plot size must be positive, got %dx%d", c.Plot.Width, c.Plot.Height)
	}
	return nil
}

func (c *Config) DelayDuration() time.Duration {
	return time.Duration(c.Delay) * time.Millisecond
}

// InitialDistribution puts all mass on the start tile.
func (c *Config) InitialDistribution() markov.Vector {
	return markov.Unit(board.Size, c.Start)
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Turns:         c.Turns,
		Tolerance:     c.Tolerance,
		ValidateState: true,
	}
}
