package export

import (
	"bufio"
	"compress/lzw"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/san-kum/sortviz/internal/render"
)

// maxGIFSize is the largest logical screen dimension a GIF can describe.
const maxGIFSize = 1<<16 - 1

// GIF streams an animated GIF to disk one frame at a time, so memory use does
// not grow with the length of the trace.
type GIF struct {
	path   string
	file   *os.File
	w      *bufio.Writer
	raster *Raster
	delay  int
	frames int
}

func NewGIF(path string) *GIF {
	return &GIF{path: path}
}

func (g *GIF) Begin(meta Meta) error {
	if meta.Width > maxGIFSize || meta.Height > maxGIFSize {
		return fmt.Errorf("%w: gif %dx%d exceeds %d", ErrFrameTooLarge, meta.Width, meta.Height, maxGIFSize)
	}
	if err := os.MkdirAll(filepath.Dir(g.path), 0755); err != nil {
		return err
	}
	f, err := os.Create(g.path)
	if err != nil {
		return err
	}
	g.file = f
	g.w = bufio.NewWriter(f)
	g.raster = NewRaster(meta)
	g.delay = gifDelay(meta.FPS)
	g.frames = 0

	if err := writeGIFHeader(g.w, meta.Width, meta.Height, g.raster.Palette()); err != nil {
		g.file.Close()
		return err
	}
	return nil
}

func (g *GIF) WriteFrame(f render.Frame) error {
	if g.w == nil {
		return ErrNotStarted
	}
	img := g.raster.Draw(f)
	if err := writeGIFFrame(g.w, img, g.delay); err != nil {
		return err
	}
	g.frames++
	return nil
}

func (g *GIF) Close() error {
	if g.w == nil {
		return ErrNotStarted
	}
	// trailer; bufio keeps the first write error for Flush
	g.w.WriteByte(0x3b)
	err := g.w.Flush()
	g.w = nil
	if cerr := g.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// Frames returns the number of frames written so far.
func (g *GIF) Frames() int { return g.frames }

// gifDelay converts a frame rate to a GIF delay in hundredths of a second.
func gifDelay(fps int) int {
	if fps < 1 {
		fps = 1
	}
	d := (100 + fps/2) / fps
	if d < 1 {
		d = 1
	}
	return d
}

func writeGIFHeader(w io.Writer, width, height int, pal color.Palette) error {
	// GIF89a, global color table of len(pal) entries, color resolution 8 bits
	sizeBits := tableBits(len(pal))
	hdr := []byte("GIF89a")
	hdr = append(hdr,
		byte(width), byte(width>>8),
		byte(height), byte(height>>8),
		0x80|0x70|byte(sizeBits-1),
		0x00, // background index
		0x00, // aspect ratio
	)
	for i := 0; i < 1<<sizeBits; i++ {
		var r, g, b uint8
		if i < len(pal) {
			c := color.RGBAModel.Convert(pal[i]).(color.RGBA)
			r, g, b = c.R, c.G, c.B
		}
		hdr = append(hdr, r, g, b)
	}
	// NETSCAPE2.0 looping extension, loop forever
	hdr = append(hdr, 0x21, 0xff, 0x0b)
	hdr = append(hdr, "NETSCAPE2.0"...)
	hdr = append(hdr, 0x03, 0x01, 0x00, 0x00, 0x00)
	_, err := w.Write(hdr)
	return err
}

func writeGIFFrame(w io.Writer, img *image.Paletted, delay int) error {
	b := img.Bounds()
	litWidth := tableBits(len(img.Palette))
	if litWidth < 2 {
		litWidth = 2
	}

	frame := []byte{
		// graphic control extension, disposal "do not dispose"
		0x21, 0xf9, 0x04, 0x04, byte(delay), byte(delay >> 8), 0x00, 0x00,
		// image descriptor, no local color table
		0x2c, 0x00, 0x00, 0x00, 0x00,
		byte(b.Dx()), byte(b.Dx() >> 8),
		byte(b.Dy()), byte(b.Dy() >> 8),
		0x00,
		byte(litWidth),
	}
	if _, err := w.Write(frame); err != nil {
		return err
	}

	bw := &subBlockWriter{w: w}
	lw := lzw.NewWriter(bw, lzw.LSB, litWidth)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		if _, err := lw.Write(img.Pix[off : off+b.Dx()]); err != nil {
			return fmt.Errorf("gif: compress row %d: %w", y, err)
		}
	}
	if err := lw.Close(); err != nil {
		return err
	}
	return bw.close()
}

// tableBits returns the smallest k >= 1 with 1<<k >= n.
func tableBits(n int) int {
	k := 1
	for 1<<k < n {
		k++
	}
	return k
}

// subBlockWriter frames a byte stream as GIF data sub-blocks of at most 255
// bytes, terminated by an empty block.
type subBlockWriter struct {
	w   io.Writer
	buf [256]byte
	n   int
	err error
}

func (s *subBlockWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	written := 0
	for len(p) > 0 {
		c := copy(s.buf[1+s.n:], p)
		s.n += c
		p = p[c:]
		written += c
		if s.n == 255 {
			s.flush()
			if s.err != nil {
				return written, s.err
			}
		}
	}
	return written, nil
}

func (s *subBlockWriter) flush() {
	if s.n == 0 {
		return
	}
	s.buf[0] = byte(s.n)
	_, s.err = s.w.Write(s.buf[:1+s.n])
	s.n = 0
}

func (s *subBlockWriter) close() error {
	s.flush()
	if s.err != nil {
		return s.err
	}
	_, err := s.w.Write([]byte{0x00})
	return err
}
