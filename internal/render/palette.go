package render

import (
	"fmt"
	"image/color"
	"sort"
)

// Palette maps roles and chart chrome to colors.
type Palette struct {
	Name       string
	Background color.RGBA
	Text       color.RGBA
	Axis       color.RGBA
	Bars       [numRoles]color.RGBA
}

func (p Palette) Color(r Role) color.RGBA {
	if r >= numRoles {
		return p.Bars[RoleBase]
	}
	return p.Bars[r]
}

// Hex returns the "#rrggbb" form of a role color.
func (p Palette) Hex(r Role) string {
	return Hex(p.Color(r))
}

func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

var (
	// PaletteClassic follows the matplotlib "tab:" colors.
	PaletteClassic = Palette{
		Name:       "classic",
		Background: rgb(0xffffff),
		Text:       rgb(0x000000),
		Axis:       rgb(0x444444),
		Bars: [numRoles]color.RGBA{
			RoleBase:    rgb(0x1f77b4),
			RoleSorted:  rgb(0x2ca02c),
			RoleMin:     rgb(0x9467bd),
			RoleActive:  rgb(0xff7f0e),
			RoleCompare: rgb(0xd62728),
			RoleSwap:    rgb(0x000000),
		},
	}

	PaletteDark = Palette{
		Name:       "dark",
		Background: rgb(0x0d1117),
		Text:       rgb(0xe6edf3),
		Axis:       rgb(0x30363d),
		Bars: [numRoles]color.RGBA{
			RoleBase:    rgb(0x58a6ff),
			RoleSorted:  rgb(0x3fb950),
			RoleMin:     rgb(0xbc8cff),
			RoleActive:  rgb(0xd29922),
			RoleCompare: rgb(0xf85149),
			RoleSwap:    rgb(0xe6edf3),
		},
	}

	PaletteMono = Palette{
		Name:       "mono",
		Background: rgb(0xffffff),
		Text:       rgb(0x000000),
		Axis:       rgb(0x888888),
		Bars: [numRoles]color.RGBA{
			RoleBase:    rgb(0xbbbbbb),
			RoleSorted:  rgb(0x888888),
			RoleMin:     rgb(0x666666),
			RoleActive:  rgb(0x444444),
			RoleCompare: rgb(0x222222),
			RoleSwap:    rgb(0x000000),
		},
	}

	palettes = map[string]Palette{
		PaletteClassic.Name: PaletteClassic,
		PaletteDark.Name:    PaletteDark,
		PaletteMono.Name:    PaletteMono,
	}
)

// GetPalette returns a palette by name, falling back to classic.
func GetPalette(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return PaletteClassic
}

// HasPalette reports whether name is a known palette.
func HasPalette(name string) bool {
	_, ok := palettes[name]
	return ok
}

func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
