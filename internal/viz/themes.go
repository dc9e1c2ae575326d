package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/render"
)

// Theme defines the player colors, one per bar role plus chrome.
type Theme struct {
	Name  string
	Text  lipgloss.Color
	Muted lipgloss.Color
	Bars  map[render.Role]lipgloss.Color
}

// ThemeFromPalette derives a terminal theme from a render palette.
func ThemeFromPalette(p render.Palette) Theme {
	bars := make(map[render.Role]lipgloss.Color)
	for r := render.RoleBase; r <= render.RoleSwap; r++ {
		bars[r] = lipgloss.Color(p.Hex(r))
	}
	// classic and mono draw swaps in black, invisible on dark terminals
	if p.Name != render.PaletteDark.Name {
		bars[render.RoleSwap] = lipgloss.Color("#ffffff")
	}
	return Theme{
		Name:  p.Name,
		Text:  lipgloss.Color("#e6edf3"),
		Muted: lipgloss.Color("#8b949e"),
		Bars:  bars,
	}
}

func (t Theme) Bar(r render.Role) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Bars[r])
}

// GetTheme returns a theme by palette name
func GetTheme(name string) Theme {
	return ThemeFromPalette(render.GetPalette(name))
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	return render.PaletteNames()
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	names := ThemeNames()
	for i, n := range names {
		if n == name {
			return GetTheme(names[(i+1)%len(names)])
		}
	}
	return GetTheme(names[0])
}
