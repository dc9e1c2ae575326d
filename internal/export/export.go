package export

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/sortviz/internal/render"
	"github.com/san-kum/sortviz/internal/trace"
)

var (
	// ErrUnsupportedFormat indicates an output format with no exporter.
	ErrUnsupportedFormat = errors.New("export: unsupported format")

	// ErrEncoderUnavailable indicates a missing external encoder binary.
	ErrEncoderUnavailable = errors.New("export: encoder not available")

	// ErrFrameTooLarge indicates a frame size the encoder cannot store.
	ErrFrameTooLarge = errors.New("export: frame too large")

	// ErrNotStarted indicates WriteFrame or Close before Begin.
	ErrNotStarted = errors.New("export: exporter not started")
)

// Meta describes a whole render.
type Meta struct {
	Title   string
	Width   int
	Height  int
	FPS     int
	Palette render.Palette
}

// Exporter writes a frame sequence to some output. Frames arrive strictly in
// order between one Begin and one Close.
type Exporter interface {
	Begin(meta Meta) error
	WriteFrame(f render.Frame) error
	Close() error
}

type constructor func(path string) Exporter

var formats = map[string]constructor{
	"gif": func(p string) Exporter { return NewGIF(p) },
	"png": func(p string) Exporter { return NewPNGSequence(p) },
	"svg": func(p string) Exporter { return NewSVGSequence(p) },
	"mp4": func(p string) Exporter { return NewMP4(p) },
}

// ForFormat returns the exporter for format writing to path.
func ForFormat(format, path string) (Exporter, error) {
	if err := CheckFormat(format); err != nil {
		return nil, err
	}
	return formats[format](path), nil
}

// CheckFormat returns ErrUnsupportedFormat when format has no exporter.
func CheckFormat(format string) error {
	if _, ok := formats[format]; !ok {
		return fmt.Errorf("%w: %q (available: %v)", ErrUnsupportedFormat, format, Formats())
	}
	return nil
}

func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSequence reports whether format writes a directory of per-frame files.
func IsSequence(format string) bool {
	return format == "png" || format == "svg"
}

// Sink turns trace steps into frames and feeds them to an exporter.
type Sink struct {
	exporter Exporter
	max      int
	frames   int
}

// NewSink builds a sink whose frames share the value ceiling max.
func NewSink(e Exporter, max int) *Sink {
	return &Sink{exporter: e, max: max}
}

func (s *Sink) Consume(index int, step trace.Step) error {
	if err := s.exporter.WriteFrame(render.NewFrame(index, step, s.max)); err != nil {
		return fmt.Errorf("write frame %d: %w", index, err)
	}
	s.frames++
	return nil
}

// Frames returns how many frames were written.
func (s *Sink) Frames() int { return s.frames }
