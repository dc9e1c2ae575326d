package viz

import "strings"

// Each terminal cell is a 2x4 Braille dot matrix. dotBits[row][col] is the
// bit for that dot, added to U+2800.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a dot grid of Width x Height cells, addressed in dots:
// (Width*2) x (Height*4) with y growing downward.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for row := range c.Grid {
		c.Grid[row] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set turns on the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return
	}
	c.Grid[y/4][x/2] |= rune(dotBits[y%4][x%2])
}

func (c *Canvas) Clear() {
	for _, row := range c.Grid {
		for col := range row {
			row[col] = brailleBlank
		}
	}
}

// Bar fills cell column col from the bottom up by height dots.
func (c *Canvas) Bar(col, height int) {
	bottom := c.PixelHeight() - 1
	for dy := 0; dy < min(height, c.PixelHeight()); dy++ {
		c.Set(col*2, bottom-dy)
		c.Set(col*2+1, bottom-dy)
	}
}

// PixelHeight is the canvas height in dots.
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
