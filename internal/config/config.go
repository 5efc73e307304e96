// Package config loads runtime settings for the scenery binaries from a YAML
// file with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrUnknownRenderer is returned by Validate for an unsupported renderer name.
var ErrUnknownRenderer = errors.New("unknown renderer")

// Renderers lists the accepted values of Config.Renderer.
var Renderers = []string{"term", "ebiten", "none"}

type Config struct {
	FixedStep     float64       `yaml:"fixed_step" env:"SCENERY_FIXED_STEP"`
	MaxFixedSteps int           `yaml:"max_fixed_steps" env:"SCENERY_MAX_FIXED_STEPS"`
	FrameInterval time.Duration `yaml:"frame_interval" env:"SCENERY_FRAME_INTERVAL"`
	Renderer      string        `yaml:"renderer" env:"SCENERY_RENDERER"`
	Width         int           `yaml:"width" env:"SCENERY_WIDTH"`
	Height        int           `yaml:"height" env:"SCENERY_HEIGHT"`
	Log           Log           `yaml:"log" envPrefix:"SCENERY_LOG_"`
}

type Log struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
	Output      string `yaml:"output" env:"OUTPUT"`
}

// Default returns the settings used when no file or environment overrides
// are present.
func Default() Config {
	return Config{
		FixedStep:     1.0 / 50.0,
		MaxFixedSteps: 5,
		FrameInterval: time.Second / 60,
		Renderer:      "term",
		Width:         1280,
		Height:        720,
		Log: Log{
			Level:  "info",
			Output: "stderr",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := Decode(f, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode reads YAML from r into cfg. An empty document leaves cfg unchanged.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.FixedStep <= 0 {
		return fmt.Errorf("fixed_step must be positive, got %v", c.FixedStep)
	}
	if c.MaxFixedSteps <= 0 {
		return fmt.Errorf("max_fixed_steps must be positive, got %d", c.MaxFixedSteps)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame_interval must be positive, got %s", c.FrameInterval)
	}
	if !slices.Contains(Renderers, c.Renderer) {
		return fmt.Errorf("%w: %q", ErrUnknownRenderer, c.Renderer)
	}
	return nil
}
