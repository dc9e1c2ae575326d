package config

import (
	"fmt"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment keys read from a dotenv file.
const (
	EnvAlgorithm = "SORTVIZ_ALGO"
	EnvN         = "SORTVIZ_N"
	EnvSeed      = "SORTVIZ_SEED"
	EnvFPS       = "SORTVIZ_FPS"
	EnvFormat    = "SORTVIZ_FORMAT"
	EnvPalette   = "SORTVIZ_PALETTE"
	EnvOut       = "SORTVIZ_OUT"
)

// ApplyEnvFile overlays settings from a dotenv file onto c. Keys that are
// absent leave c unchanged.
func (c *Config) ApplyEnvFile(path string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read env file: %w", err)
	}
	return c.ApplyEnv(env)
}

func (c *Config) ApplyEnv(env map[string]string) error {
	if v, ok := env[EnvAlgorithm]; ok {
		c.Algorithm = v
	}
	if v, ok := env[EnvFormat]; ok {
		c.Format = v
	}
	if v, ok := env[EnvPalette]; ok {
		c.Palette = v
	}
	if v, ok := env[EnvOut]; ok {
		c.Out = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvN, &c.N},
		{EnvFPS, &c.FPS},
	}
	for _, kv := range ints {
		v, ok := env[kv.key]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", kv.key, err)
		}
		*kv.dst = n
	}

	if v, ok := env[EnvSeed]; ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	return nil
}
