package export

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/sortviz/internal/render"
)

// Palette layout of rasterized frames.
const (
	idxBackground = 0
	idxText       = 1
	idxAxis       = 2
	idxRoleBase   = 3

	paletteSize = 16
)

const (
	marginTop    = 32
	marginBottom = 24
	marginLeft   = 16
	marginRight  = 16
	barFill      = 0.8
)

// Raster draws frames into a paletted image. The same image is reused for
// every call to Draw.
type Raster struct {
	meta    Meta
	palette color.Palette
	img     *image.Paletted
	face    font.Face
}

func NewRaster(meta Meta) *Raster {
	pal := make(color.Palette, paletteSize)
	for i := range pal {
		pal[i] = color.RGBA{A: 0xff}
	}
	pal[idxBackground] = meta.Palette.Background
	pal[idxText] = meta.Palette.Text
	pal[idxAxis] = meta.Palette.Axis
	for r := render.RoleBase; r <= render.RoleSwap; r++ {
		pal[idxRoleBase+int(r)] = meta.Palette.Color(r)
	}

	return &Raster{
		meta:    meta,
		palette: pal,
		img:     image.NewPaletted(image.Rect(0, 0, meta.Width, meta.Height), pal),
		face:    basicfont.Face7x13,
	}
}

func (r *Raster) Palette() color.Palette { return r.palette }

// Draw renders f and returns the shared image.
func (r *Raster) Draw(f render.Frame) *image.Paletted {
	img := r.img
	for i := range img.Pix {
		img.Pix[i] = idxBackground
	}

	w, h := r.meta.Width, r.meta.Height
	plotX0, plotX1 := marginLeft, w-marginRight
	plotY0, plotY1 := marginTop, h-marginBottom
	plotW, plotH := plotX1-plotX0, plotY1-plotY0

	r.fill(plotX0, plotY1, plotX1, plotY1+1, idxAxis)

	n := len(f.Heights)
	if n > 0 && plotW > 0 && plotH > 0 {
		slot := float64(plotW) / float64(n)
		for i := 0; i < n; i++ {
			x0 := plotX0 + int(float64(i)*slot)
			x1 := x0 + int(slot*barFill)
			if x1 <= x0 {
				x1 = x0 + 1
			}
			top := plotY1 - int(f.Scale(i)*float64(plotH))
			role := render.RoleBase
			if i < len(f.Roles) {
				role = f.Roles[i]
			}
			r.fill(x0, top, x1, plotY1, uint8(idxRoleBase+int(role)))
		}
	}

	if r.meta.Title != "" {
		tw := font.MeasureString(r.face, r.meta.Title).Ceil()
		r.text((w-tw)/2, 20, r.meta.Title)
	}
	r.text(plotX0+8, plotY0+16, f.Caption)
	return img
}

func (r *Raster) fill(x0, y0, x1, y1 int, idx uint8) {
	b := r.img.Bounds()
	rect := image.Rect(x0, y0, x1, y1).Intersect(b)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		off := r.img.PixOffset(rect.Min.X, y)
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r.img.Pix[off] = idx
			off++
		}
	}
}

func (r *Raster) text(x, y int, s string) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(r.palette[idxText]),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
