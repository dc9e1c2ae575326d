package sorts

import (
	"fmt"

	"github.com/san-kum/sortviz/internal/trace"
)

type insertionPhase int

const (
	insStart insertionPhase = iota
	insPick
	insShift
	insDone
	insExhausted
)

// Insertion narrates insertion sort. Shifting uses strict "greater than", so
// equal keys never pass each other.
type Insertion struct {
	input trace.Snapshot
	a     trace.Snapshot
	phase insertionPhase
	i, j  int
	key   int
}

func NewInsertion(values []int) *Insertion {
	g := &Insertion{input: trace.Snapshot(values).Clone()}
	g.Reset()
	return g
}

// Reset rewinds the generator to its initial state.
func (g *Insertion) Reset() {
	g.a = g.input.Clone()
	g.phase = insStart
	g.i, g.j, g.key = 0, 0, 0
}

func (g *Insertion) Next() (trace.Step, bool) {
	n := len(g.a)
	for {
		switch g.phase {
		case insStart:
			g.phase = insPick
			g.i = 1
			return g.emit(trace.Annotation{Kind: trace.KindStart, Sorted: trace.Prefix(0), Info: "start"}), true

		case insPick:
			if g.i >= n {
				g.phase = insDone
				continue
			}
			g.key = g.a[g.i]
			g.j = g.i - 1
			g.phase = insShift
			return g.emit(trace.Annotation{
				Kind:   trace.KindPick,
				Sorted: trace.Prefix(g.i),
				Active: []int{g.i},
				Info:   fmt.Sprintf("pick key at i=%d", g.i),
			}), true

		case insShift:
			if g.j >= 0 && g.a[g.j] > g.key {
				g.a[g.j+1] = g.a[g.j]
				step := g.emit(trace.Annotation{
					Kind:    trace.KindShift,
					Sorted:  trace.Prefix(g.i),
					Active:  []int{g.i},
					Compare: []int{g.j},
					Info:    fmt.Sprintf("shift %d right", g.a[g.j]),
				})
				g.j--
				return step, true
			}
			slot := g.j + 1
			g.a[slot] = g.key
			step := g.emit(trace.Annotation{
				Kind:   trace.KindPlace,
				Sorted: trace.Prefix(g.i + 1),
				Active: []int{slot},
				Info:   fmt.Sprintf("place key at %d", slot),
			})
			g.i++
			g.phase = insPick
			return step, true

		case insDone:
			g.phase = insExhausted
			return g.emit(trace.Annotation{Kind: trace.KindDone, Sorted: trace.Prefix(n), Info: "done"}), true

		default:
			return trace.Step{}, false
		}
	}
}

func (g *Insertion) emit(ann trace.Annotation) trace.Step {
	return trace.Step{Array: g.a.Clone(), Annotation: ann}
}
