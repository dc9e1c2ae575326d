package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/experiment"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/render"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	stateMenu = iota
	statePlay
)

const (
	minFPS       = 1
	maxFPS       = 120
	canvasRows   = 16
	progressSize = 30
)

var algorithmInfo = map[string]string{
	"insertion": "shift larger values right, drop the key in",
	"selection": "scan for the minimum, swap it forward",
}

// TickMsg advances playback. Ticks from a previous run carry a stale id and
// are dropped.
type TickMsg struct {
	id int
}

type Options struct {
	// Algorithm starts playback directly; empty opens the menu.
	Algorithm string
	FPS       int
	Theme     string
}

// Player is the Bubble Tea model for trace playback.
type Player struct {
	registry   *experiment.Registry
	algorithms []string
	values     trace.Snapshot
	max        int

	state, cursor int
	selected      string

	gen      trace.Generator
	step     trace.Step
	index    int
	started  bool
	done     bool
	paused   bool
	fps      int
	tickID   int
	recorder *metrics.Recorder

	theme         Theme
	width, height int
	err           error
}

func NewPlayer(registry *experiment.Registry, values []int, opts Options) (Player, error) {
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	themeName := opts.Theme
	if !render.HasPalette(themeName) {
		themeName = render.PaletteDark.Name
	}
	p := Player{
		registry:   registry,
		algorithms: registry.List(),
		values:     trace.Snapshot(values).Clone(),
		max:        trace.Snapshot(values).Max(),
		fps:        clampFPS(fps),
		theme:      GetTheme(themeName),
		width:      80,
		height:     24,
	}
	if opts.Algorithm != "" {
		// fail before the program starts rather than inside the UI
		if _, err := registry.Get(opts.Algorithm); err != nil {
			return Player{}, err
		}
		p.selected = opts.Algorithm
		p.state = statePlay
		p.restart()
	}
	return p, nil
}

func clampFPS(fps int) int {
	return max(minFPS, min(maxFPS, fps))
}

func (p Player) Init() tea.Cmd {
	if p.state == statePlay {
		return p.tick()
	}
	return nil
}

func (p Player) tick() tea.Cmd {
	id := p.tickID
	return tea.Tick(time.Second/time.Duration(p.fps), func(time.Time) tea.Msg { return TickMsg{id: id} })
}

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if p.state == stateMenu {
			return p.menuKey(msg)
		}
		return p.playKey(msg)
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		return p, nil
	case TickMsg:
		if p.state != statePlay || msg.id != p.tickID {
			return p, nil
		}
		if !p.paused && !p.done {
			p.advance()
		}
		if p.done {
			return p, nil
		}
		return p, p.tick()
	}
	return p, nil
}

func (p Player) menuKey(msg tea.KeyMsg) (Player, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.algorithms)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.algorithms) == 0 {
			return p, nil
		}
		p.selected = p.algorithms[p.cursor]
		p.state = statePlay
		p.restart()
		return p, p.tick()
	}
	return p, nil
}

func (p Player) playKey(msg tea.KeyMsg) (Player, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "esc":
		p.state = stateMenu
		p.tickID++
	case " ":
		p.paused = !p.paused
	case "n", "right":
		if p.paused && !p.done {
			p.advance()
		}
	case "+", "=":
		p.fps = clampFPS(p.fps * 2)
	case "-", "_":
		p.fps = clampFPS(p.fps / 2)
	case "t":
		p.theme = NextTheme(p.theme.Name)
	case "r":
		p.restart()
		return p, p.tick()
	}
	return p, nil
}

// restart builds a fresh generator over the original input and shows its
// first step.
func (p *Player) restart() {
	gen, err := p.registry.New(p.selected, p.values)
	p.tickID++
	p.index, p.started, p.done, p.paused = 0, false, false, false
	p.recorder = metrics.NewRecorder(metrics.Defaults()...)
	p.err = err
	if err != nil {
		p.gen = nil
		p.done = true
		return
	}
	p.gen = gen
	p.advance()
}

func (p *Player) advance() {
	step, ok := p.gen.Next()
	if !ok {
		p.done = true
		return
	}
	if p.started {
		p.index++
	}
	p.step, p.started = step, true
	p.recorder.Observe(step)
	if step.Annotation.Kind == trace.KindDone {
		p.done = true
	}
}

// Progress is the sorted fraction of the current step.
func (p Player) Progress() float64 {
	n := len(p.step.Array)
	if n == 0 {
		if p.done {
			return 1
		}
		return 0
	}
	return float64(p.step.Annotation.Sorted.Len()) / float64(n)
}

func (p Player) Step() (trace.Step, bool) { return p.step, p.started }

func (p Player) Done() bool { return p.done }

func (p Player) View() string {
	if p.state == stateMenu {
		return p.viewMenu()
	}
	return p.viewPlay()
}

func (p Player) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("SORTVIZ") + "\n    " + mutedStyle.Render("sorting algorithm player") + "\n    " + rule(24) + "\n\n")
	for i, name := range p.algorithms {
		desc := algorithmInfo[name]
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", titleStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-12s", name)), mutedStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", mutedStyle.Render(fmt.Sprintf("%-12s", name)), mutedStyle.Render(desc)))
		}
	}
	b.WriteString(fmt.Sprintf("\n    %s\n", mutedStyle.Render(fmt.Sprintf("n=%d", len(p.values)))))
	b.WriteString("\n    " + hintStyle.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

func (p Player) viewPlay() string {
	var b strings.Builder

	title := fmt.Sprintf("%s Sort | n=%d | %d fps", titleCase(p.selected), len(p.values), p.fps)
	b.WriteString(titleStyle.Render(title) + "\n")

	if p.err != nil {
		b.WriteString(errorStyle.Render(p.err.Error()) + "\n")
		return panelStyle.Render(b.String())
	}

	b.WriteString(p.drawBars())

	status := runningStyle.Render("RUNNING")
	switch {
	case p.done:
		status = doneStyle.Render("DONE")
	case p.paused:
		status = pausedStyle.Render("PAUSED")
	}
	b.WriteString(fmt.Sprintf("%s  step %d  %s\n", status, p.index, lipgloss.NewStyle().Foreground(p.theme.Text).Render(p.step.Annotation.Info)))
	b.WriteString(progressBar(p.Progress(), progressSize, p.theme.Bar(render.RoleSorted)) + "\n")

	values := p.recorder.Values()
	var stats []string
	for _, name := range p.recorder.Names() {
		stats = append(stats, counterLabel.Render(name)+counterValue.Render(fmt.Sprintf("%d", int(values[name]))))
	}
	for i := 0; i < len(stats); i += 3 {
		b.WriteString(strings.Join(stats[i:min(i+3, len(stats))], "  ") + "\n")
	}

	b.WriteString(hintStyle.Render(fmt.Sprintf("space pause  n step  +/- speed  r restart  t theme(%s)  esc menu  q quit", p.theme.Name)))
	return panelStyle.Render(b.String())
}

// drawBars renders one Braille column per bar, colored by the bar's role.
func (p Player) drawBars() string {
	if !p.started {
		return "\n"
	}
	frame := render.NewFrame(p.index, p.step, p.max)
	n := len(frame.Heights)
	if n == 0 {
		return lipgloss.NewStyle().Foreground(p.theme.Muted).Render("(empty input)") + "\n"
	}

	c := NewCanvas(n, canvasRows)
	for i := range frame.Heights {
		c.Bar(i, int(math.Round(frame.Scale(i)*float64(c.PixelHeight()))))
	}

	var b strings.Builder
	for _, row := range c.Grid {
		for col, r := range row {
			b.WriteString(p.theme.Bar(frame.Roles[col]).Render(string(r)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Run starts the player in the alternate screen and blocks until it quits.
func Run(p Player) error {
	_, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}
