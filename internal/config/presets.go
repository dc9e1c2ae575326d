package config

import "sort"

var Presets = map[string]map[string]*Config{
	"insertion": {
		"small": {
			Algorithm: "insertion", N: 12, Seed: 7, FPS: 8, Format: "gif",
		},
		"default": {
			Algorithm: "insertion", N: 40, Seed: 42, FPS: 30, Format: "gif",
		},
		"reversed": {
			Algorithm: "insertion", FPS: 30, Format: "gif",
			Values: []int{16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
		},
		"nearly-sorted": {
			Algorithm: "insertion", FPS: 24, Format: "gif",
			Values: []int{1, 2, 4, 3, 5, 6, 8, 7, 9, 10, 12, 11},
		},
	},
	"selection": {
		"small": {
			Algorithm: "selection", N: 12, Seed: 7, FPS: 8, Format: "gif",
		},
		"large": {
			Algorithm: "selection", N: 60, Seed: 42, FPS: 24, Format: "mp4",
		},
		"duplicates": {
			Algorithm: "selection", FPS: 12, Format: "gif",
			Values: []int{3, 1, 3, 2, 1, 2, 3, 1},
		},
	},
}

func GetPreset(algorithm, preset string) *Config {
	algoPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	cfg, ok := algoPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(algorithm string) []string {
	algoPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(algoPresets))
	for name := range algoPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's non-zero fields onto c.
func (c *Config) Apply(p *Config) {
	if p.Algorithm != "" {
		c.Algorithm = p.Algorithm
	}
	if p.N != 0 {
		c.N = p.N
	}
	if p.Seed != 0 {
		c.Seed = p.Seed
	}
	if p.FPS != 0 {
		c.FPS = p.FPS
	}
	if p.Format != "" {
		c.Format = p.Format
	}
	if p.Out != "" {
		c.Out = p.Out
	}
	if p.Palette != "" {
		c.Palette = p.Palette
	}
	if p.Width != 0 {
		c.Width = p.Width
	}
	if p.Height != 0 {
		c.Height = p.Height
	}
	if p.Values != nil {
		c.Values = append([]int(nil), p.Values...)
	}
}
