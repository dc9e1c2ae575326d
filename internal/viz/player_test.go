package viz

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sortviz/internal/experiment"
	"github.com/san-kum/sortviz/internal/trace"
)

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, p Player, msg tea.Msg) (Player, tea.Cmd) {
	t.Helper()
	m, cmd := p.Update(msg)
	next, ok := m.(Player)
	require.True(t, ok)
	return next, cmd
}

func TestNewPlayerUnknownAlgorithm(t *testing.T) {
	_, err := NewPlayer(experiment.NewRegistry(), []int{1}, Options{Algorithm: "bogo"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, trace.ErrInvalidAlgorithm))
}

func TestPlayerSingleStep(t *testing.T) {
	p, err := NewPlayer(experiment.NewRegistry(), []int{2, 1}, Options{Algorithm: "selection", FPS: 10})
	require.NoError(t, err)

	step, ok := p.Step()
	require.True(t, ok)
	assert.Equal(t, trace.KindStart, step.Annotation.Kind)

	p, _ = send(t, p, key(" "))
	for i := 0; i < 10 && !p.Done(); i++ {
		p, _ = send(t, p, key("n"))
	}
	require.True(t, p.Done())
	assert.Equal(t, 5, p.index)

	step, _ = p.Step()
	assert.Equal(t, trace.Snapshot{1, 2}, step.Array)
	assert.Equal(t, 1.0, p.Progress())
	assert.Equal(t, 1.0, p.recorder.Values()["swaps"])
}

func TestPlayerStepKeysIgnoredWhileRunning(t *testing.T) {
	p, err := NewPlayer(experiment.NewRegistry(), []int{3, 2, 1}, Options{Algorithm: "insertion"})
	require.NoError(t, err)

	p, _ = send(t, p, key("right"))
	assert.Equal(t, 0, p.index)
}

func TestPlayerTicks(t *testing.T) {
	p, err := NewPlayer(experiment.NewRegistry(), []int{3, 2, 1}, Options{Algorithm: "insertion"})
	require.NoError(t, err)

	p, cmd := send(t, p, TickMsg{id: p.tickID})
	assert.Equal(t, 1, p.index)
	assert.NotNil(t, cmd)

	// stale tick from before a restart
	stale := p.tickID
	p, _ = send(t, p, key("r"))
	assert.Equal(t, 0, p.index)
	p, cmd = send(t, p, TickMsg{id: stale})
	assert.Equal(t, 0, p.index)
	assert.Nil(t, cmd)

	for i := 0; i < 100 && !p.Done(); i++ {
		p, _ = send(t, p, TickMsg{id: p.tickID})
	}
	require.True(t, p.Done())
	_, cmd = send(t, p, TickMsg{id: p.tickID})
	assert.Nil(t, cmd, "ticking stops once the trace is done")
}

func TestPlayerSpeedAndTheme(t *testing.T) {
	p, err := NewPlayer(experiment.NewRegistry(), []int{1, 2}, Options{Algorithm: "insertion", FPS: 100, Theme: "classic"})
	require.NoError(t, err)

	p, _ = send(t, p, key("+"))
	assert.Equal(t, maxFPS, p.fps)
	for i := 0; i < 10; i++ {
		p, _ = send(t, p, key("-"))
	}
	assert.Equal(t, minFPS, p.fps)

	seen := map[string]bool{p.theme.Name: true}
	for range ThemeNames() {
		p, _ = send(t, p, key("t"))
		seen[p.theme.Name] = true
	}
	assert.Len(t, seen, len(ThemeNames()))
	assert.Equal(t, "classic", p.theme.Name)
}

func TestPlayerMenu(t *testing.T) {
	p, err := NewPlayer(experiment.NewRegistry(), []int{2, 1}, Options{})
	require.NoError(t, err)
	assert.Contains(t, p.View(), "insertion")

	_, started := p.Step()
	assert.False(t, started)

	p, _ = send(t, p, key("j"))
	p, cmd := send(t, p, key("enter"))
	assert.NotNil(t, cmd)
	assert.Equal(t, "selection", p.selected)
	assert.Contains(t, p.View(), "Selection Sort | n=2")

	p, _ = send(t, p, key("esc"))
	assert.Equal(t, stateMenu, p.state)
}

func TestPlayerQuit(t *testing.T) {
	p, err := NewPlayer(experiment.NewRegistry(), []int{2, 1}, Options{Algorithm: "insertion"})
	require.NoError(t, err)

	_, cmd := send(t, p, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestCanvasBar(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Bar(0, 8)
	c.Bar(1, 1)

	assert.Equal(t, 8, c.PixelHeight())
	assert.Equal(t, rune(0x28FF), c.Grid[0][0])
	assert.Equal(t, rune(0x28FF), c.Grid[1][0])
	assert.Equal(t, rune(brailleBlank), c.Grid[0][1])
	assert.Equal(t, rune(brailleBlank|0x40|0x80), c.Grid[1][1])
}
