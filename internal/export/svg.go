package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/sortviz/internal/render"
)

// FrameToSVG converts a frame to a standalone SVG bar chart.
func FrameToSVG(f render.Frame, pal render.Palette, width, height int, title string) string {
	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, render.Hex(pal.Background)))

	plotX0, plotX1 := float64(marginLeft), float64(width-marginRight)
	plotY0, plotY1 := float64(marginTop), float64(height-marginBottom)
	plotW, plotH := plotX1-plotX0, plotY1-plotY0

	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, plotX0, plotY1, plotX1, plotY1, render.Hex(pal.Axis)))

	n := len(f.Heights)
	if n > 0 && plotW > 0 && plotH > 0 {
		slot := plotW / float64(n)
		sb.WriteString("<g>\n")
		for i := 0; i < n; i++ {
			h := f.Scale(i) * plotH
			role := render.RoleBase
			if i < len(f.Roles) {
				role = f.Roles[i]
			}
			sb.WriteString(fmt.Sprintf(`<rect class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, role, plotX0+float64(i)*slot, plotY1-h, slot*barFill, h, pal.Hex(role)))
		}
		sb.WriteString("</g>\n")
	}

	text := render.Hex(pal.Text)
	if title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="20" fill="%s" font-family="monospace" font-size="13" text-anchor="middle">%s</text>
`, width/2, text, html.EscapeString(title)))
	}
	if f.Caption != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="13">%s</text>
`, plotX0+8, plotY0+16, text, html.EscapeString(f.Caption)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
