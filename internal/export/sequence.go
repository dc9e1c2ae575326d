package export

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/sortviz/internal/render"
)

// SequenceDir maps an output path to the directory a per-frame exporter
// writes into: the path without its extension.
func SequenceDir(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// PNGSequence writes frame_00000.png, frame_00001.png, ... into a directory.
type PNGSequence struct {
	dir    string
	raster *Raster
	enc    png.Encoder
	frames int
}

func NewPNGSequence(path string) *PNGSequence {
	return &PNGSequence{
		dir: SequenceDir(path),
		enc: png.Encoder{CompressionLevel: png.BestSpeed},
	}
}

func (p *PNGSequence) Begin(meta Meta) error {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return err
	}
	p.raster = NewRaster(meta)
	p.frames = 0
	return nil
}

func (p *PNGSequence) WriteFrame(f render.Frame) error {
	if p.raster == nil {
		return ErrNotStarted
	}
	path := filepath.Join(p.dir, fmt.Sprintf("frame_%05d.png", p.frames))
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := p.enc.Encode(out, p.raster.Draw(f)); err != nil {
		out.Close()
		return err
	}
	p.frames++
	return out.Close()
}

func (p *PNGSequence) Close() error {
	if p.raster == nil {
		return ErrNotStarted
	}
	p.raster = nil
	return nil
}

// SVGSequence writes one standalone SVG document per frame.
type SVGSequence struct {
	dir     string
	meta    Meta
	started bool
	frames  int
}

func NewSVGSequence(path string) *SVGSequence {
	return &SVGSequence{dir: SequenceDir(path)}
}

func (s *SVGSequence) Begin(meta Meta) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	s.meta = meta
	s.started = true
	s.frames = 0
	return nil
}

func (s *SVGSequence) WriteFrame(f render.Frame) error {
	if !s.started {
		return ErrNotStarted
	}
	path := filepath.Join(s.dir, fmt.Sprintf("frame_%05d.svg", s.frames))
	doc := FrameToSVG(f, s.meta.Palette, s.meta.Width, s.meta.Height, s.meta.Title)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return err
	}
	s.frames++
	return nil
}

func (s *SVGSequence) Close() error {
	if !s.started {
		return ErrNotStarted
	}
	s.started = false
	return nil
}
