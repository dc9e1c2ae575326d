package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/render"
)

const (
	DefaultAlgorithm = "insertion"
	DefaultN         = 40
	DefaultSeed      = 42
	DefaultFPS       = 30
	DefaultFormat    = "gif"
	DefaultWidth     = 960
	DefaultHeight    = 480

	// MaxFrameSize bounds width and height; GIF stores them as 16-bit fields.
	MaxFrameSize = 65535
)

type Config struct {
	Algorithm string `yaml:"algorithm"`
	N         int    `yaml:"n"`
	Seed      int64  `yaml:"seed"`
	FPS       int    `yaml:"fps"`
	Format    string `yaml:"format"`
	Out       string `yaml:"out,omitempty"`
	Palette   string `yaml:"palette"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	// Values, when set, replaces the random permutation as input.
	Values []int `yaml:"values,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		N:         DefaultN,
		Seed:      DefaultSeed,
		FPS:       DefaultFPS,
		Format:    DefaultFormat,
		Palette:   render.PaletteClassic.Name,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
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

// Merge overlays the YAML file at path onto c. Keys absent from the file keep
// their current values.
func (c *Config) Merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks render settings. The algorithm name is checked by the
// registry, not here. checkFormat, when non-nil, reports whether the output
// format has an encoder.
func (c *Config) Validate(checkFormat func(format string) error) error {
	if c.N < 0 {
		return fmt.Errorf("n must be non-negative, got %d", c.N)
	}
	if c.FPS < 1 {
		return fmt.Errorf("fps must be at least 1, got %d", c.FPS)
	}
	if checkFormat != nil {
		if err := checkFormat(c.Format); err != nil {
			return err
		}
	}
	if !render.HasPalette(c.Palette) {
		return fmt.Errorf("unknown palette %q (available: %v)", c.Palette, render.PaletteNames())
	}
	if c.Width < 64 || c.Height < 64 {
		return fmt.Errorf("frame size must be at least 64x64, got %dx%d", c.Width, c.Height)
	}
	if c.Width > MaxFrameSize || c.Height > MaxFrameSize {
		return fmt.Errorf("frame size must be at most %dx%d, got %dx%d", MaxFrameSize, MaxFrameSize, c.Width, c.Height)
	}
	return nil
}

// Size returns the number of bars: len(Values) when explicit values are set.
func (c *Config) Size() int {
	if c.Values != nil {
		return len(c.Values)
	}
	return c.N
}
