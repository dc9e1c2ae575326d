package export

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/san-kum/sortviz/internal/render"
)

// MP4 pipes raw RGBA frames into an ffmpeg process.
type MP4 struct {
	path   string
	binary string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	raster *Raster
	rgba   *image.RGBA
}

func NewMP4(path string) *MP4 {
	return &MP4{path: path, binary: "ffmpeg"}
}

func (m *MP4) Begin(meta Meta) error {
	bin, err := exec.LookPath(m.binary)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncoderUnavailable, m.binary, err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}

	// yuv420p needs even dimensions
	meta.Width &^= 1
	meta.Height &^= 1

	m.raster = NewRaster(meta)
	m.rgba = image.NewRGBA(image.Rect(0, 0, meta.Width, meta.Height))
	m.cmd = exec.Command(bin, ffmpegArgs(meta, m.path)...)
	m.cmd.Stderr = io.Discard

	m.stdin, err = m.cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.binary, err)
	}
	return nil
}

func ffmpegArgs(meta Meta, out string) []string {
	fps := meta.FPS
	if fps < 1 {
		fps = 1
	}
	return []string{
		"-y", "-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", meta.Width, meta.Height),
		"-r", strconv.Itoa(fps),
		"-i", "-",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-b:v", "1800k",
		out,
	}
}

func (m *MP4) WriteFrame(f render.Frame) error {
	if m.cmd == nil {
		return ErrNotStarted
	}
	img := m.raster.Draw(f)
	draw.Draw(m.rgba, m.rgba.Bounds(), img, image.Point{}, draw.Src)
	_, err := m.stdin.Write(m.rgba.Pix)
	return err
}

func (m *MP4) Close() error {
	if m.cmd == nil {
		return ErrNotStarted
	}
	cmd := m.cmd
	m.cmd = nil
	if err := m.stdin.Close(); err != nil {
		cmd.Wait()
		return err
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s: %w", m.binary, err)
	}
	return nil
}
