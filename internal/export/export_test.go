package export

import (
	"bytes"
	"context"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sortviz/internal/experiment"
	"github.com/san-kum/sortviz/internal/render"
	"github.com/san-kum/sortviz/internal/trace"
)

func testMeta() Meta {
	return Meta{Title: "Insertion Sort | n=3", Width: 200, Height: 120, FPS: 30, Palette: render.PaletteClassic}
}

func renderTrace(t *testing.T, e Exporter, values []int) int {
	t.Helper()
	gen, err := experiment.NewRegistry().New("insertion", values)
	require.NoError(t, err)
	require.NoError(t, e.Begin(testMeta()))
	sink := NewSink(e, trace.Snapshot(values).Max())
	n, err := experiment.Run(context.Background(), gen, sink)
	require.NoError(t, err)
	require.NoError(t, e.Close())
	assert.Equal(t, n, sink.Frames())
	return n
}

func TestForFormat(t *testing.T) {
	for _, f := range Formats() {
		e, err := ForFormat(f, "out/x."+f)
		require.NoError(t, err, f)
		assert.NotNil(t, e)
	}
	_, err := ForFormat("avi", "x.avi")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.ErrorIs(t, CheckFormat("webm"), ErrUnsupportedFormat)
	assert.NoError(t, CheckFormat("svg"))
	assert.Equal(t, []string{"gif", "mp4", "png", "svg"}, Formats())
	assert.True(t, IsSequence("png"))
	assert.False(t, IsSequence("gif"))
}

func TestNotStarted(t *testing.T) {
	f := render.Frame{Heights: []int{1}, Max: 1}
	for _, e := range []Exporter{NewGIF("a.gif"), NewPNGSequence("a.png"), NewSVGSequence("a.svg"), NewMP4("a.mp4")} {
		assert.ErrorIs(t, e.WriteFrame(f), ErrNotStarted)
		assert.ErrorIs(t, e.Close(), ErrNotStarted)
	}
}

func TestGIFRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "insertion.gif")
	n := renderTrace(t, NewGIF(path), []int{3, 1, 2})
	require.Equal(t, 8, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	anim, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, anim.Image, 8)
	assert.Equal(t, 0, anim.LoopCount)
	assert.Equal(t, 200, anim.Config.Width)
	assert.Equal(t, 120, anim.Config.Height)
	for _, d := range anim.Delay {
		assert.Equal(t, 3, d)
	}

	// step 2 is the first shift: index 0 is being compared
	compare := uint8(idxRoleBase + int(render.RoleCompare))
	assert.Contains(t, anim.Image[2].Pix, compare)
	assert.NotContains(t, anim.Image[0].Pix, compare)
}

func TestGIFTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.gif")
	meta := testMeta()
	meta.Width = 70000
	assert.ErrorIs(t, NewGIF(path).Begin(meta), ErrFrameTooLarge)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file for a rejected frame size")
}

func TestGIFDelay(t *testing.T) {
	tests := map[int]int{0: 100, 1: 100, 24: 4, 30: 3, 60: 2, 1000: 1}
	for fps, want := range tests {
		assert.Equal(t, want, gifDelay(fps), "fps %d", fps)
	}
}

func TestTableBits(t *testing.T) {
	assert.Equal(t, 1, tableBits(2))
	assert.Equal(t, 4, tableBits(16))
	assert.Equal(t, 4, tableBits(9))
	assert.Equal(t, 8, tableBits(256))
}

func TestRasterBars(t *testing.T) {
	r := NewRaster(testMeta())
	img := r.Draw(render.Frame{
		Heights: []int{2, 1},
		Roles:   []render.Role{render.RoleSwap, render.RoleSorted},
		Max:     2,
	})

	bottom := testMeta().Height - marginBottom - 1
	assert.Equal(t, uint8(idxRoleBase+int(render.RoleSwap)), img.ColorIndexAt(marginLeft+2, bottom))
	slot := (testMeta().Width - marginLeft - marginRight) / 2
	assert.Equal(t, uint8(idxRoleBase+int(render.RoleSorted)), img.ColorIndexAt(marginLeft+slot+2, bottom))
	assert.Equal(t, uint8(idxBackground), img.ColorIndexAt(testMeta().Width-2, bottom))
}

func TestPNGSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.png")
	n := renderTrace(t, NewPNGSequence(path), []int{2, 1})

	entries, err := os.ReadDir(SequenceDir(path))
	require.NoError(t, err)
	assert.Len(t, entries, n)

	f, err := os.Open(filepath.Join(SequenceDir(path), "frame_00000.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestSVGSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.svg")
	n := renderTrace(t, NewSVGSequence(path), []int{1})
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(filepath.Join(SequenceDir(path), "frame_00001.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ">done</text>")
}

func TestFrameToSVG(t *testing.T) {
	f := render.Frame{
		Heights: []int{3, 1},
		Roles:   []render.Role{render.RoleCompare, render.RoleBase},
		Caption: "a < b",
		Max:     3,
	}
	doc := FrameToSVG(f, render.PaletteClassic, 100, 100, "t")

	assert.True(t, strings.HasPrefix(doc, "<?xml"))
	assert.True(t, strings.HasSuffix(doc, "</svg>"))
	assert.Equal(t, 2, strings.Count(doc, "<rect class="))
	assert.Contains(t, doc, `class="compare"`)
	assert.Contains(t, doc, render.PaletteClassic.Hex(render.RoleCompare))
	assert.Contains(t, doc, "a &lt; b")
}

func TestMP4MissingEncoder(t *testing.T) {
	m := NewMP4(filepath.Join(t.TempDir(), "x.mp4"))
	m.binary = "sortviz-no-such-encoder"
	assert.ErrorIs(t, m.Begin(testMeta()), ErrEncoderUnavailable)
}

func TestFFmpegArgs(t *testing.T) {
	args := ffmpegArgs(Meta{Width: 640, Height: 320, FPS: 24}, "out.mp4")
	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-s 640x320")
	assert.Contains(t, joined, "-r 24")
	assert.Equal(t, "out.mp4", args[len(args)-1])
}

func TestSequenceDir(t *testing.T) {
	assert.Equal(t, filepath.Join("reports", "insertion_n40"), SequenceDir(filepath.Join("reports", "insertion_n40.png")))
	assert.Equal(t, "frames", SequenceDir("frames"))
}
