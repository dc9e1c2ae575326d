package sorts

import (
	"fmt"

	"github.com/san-kum/sortviz/internal/trace"
)

type selectionPhase int

const (
	selStart selectionPhase = iota
	selOuter
	selScan
	selNewMin
	selSettle
	selDone
	selExhausted
)

// Selection narrates selection sort. The candidate minimum only moves on a
// strictly smaller element, so the leftmost occurrence of the minimum wins.
// The number of steps depends on the data, not only on its length.
type Selection struct {
	input  trace.Snapshot
	a      trace.Snapshot
	phase  selectionPhase
	i, j   int
	minIdx int
}

func NewSelection(values []int) *Selection {
	g := &Selection{input: trace.Snapshot(values).Clone()}
	g.Reset()
	return g
}

// Reset rewinds the generator to its initial state.
func (g *Selection) Reset() {
	g.a = g.input.Clone()
	g.phase = selStart
	g.i, g.j, g.minIdx = 0, 0, 0
}

func (g *Selection) Next() (trace.Step, bool) {
	n := len(g.a)
	for {
		switch g.phase {
		case selStart:
			g.phase = selOuter
			g.i = 0
			return g.emit(trace.Annotation{Kind: trace.KindStart, Sorted: trace.Prefix(0), Info: "start"}), true

		case selOuter:
			if g.i >= n {
				g.phase = selDone
				continue
			}
			g.minIdx = g.i
			g.j = g.i + 1
			g.phase = selScan

		case selScan:
			if g.j >= n {
				g.phase = selSettle
				continue
			}
			step := g.emit(trace.Annotation{
				Kind:     trace.KindCompare,
				Sorted:   trace.Prefix(g.i),
				MinIndex: trace.Int(g.minIdx),
				Active:   []int{g.j},
				Info:     fmt.Sprintf("compare j=%d with min_idx=%d", g.j, g.minIdx),
			})
			if g.a[g.j] < g.a[g.minIdx] {
				g.phase = selNewMin
			} else {
				g.j++
			}
			return step, true

		case selNewMin:
			g.minIdx = g.j
			step := g.emit(trace.Annotation{
				Kind:     trace.KindNewMin,
				Sorted:   trace.Prefix(g.i),
				MinIndex: trace.Int(g.minIdx),
				Active:   []int{g.j},
				Info:     fmt.Sprintf("new min at j=%d", g.j),
			})
			g.j++
			g.phase = selScan
			return step, true

		case selSettle:
			var step trace.Step
			if g.minIdx != g.i {
				g.a[g.i], g.a[g.minIdx] = g.a[g.minIdx], g.a[g.i]
				step = g.emit(trace.Annotation{
					Kind:   trace.KindSwap,
					Sorted: trace.Prefix(g.i + 1),
					Swap:   &trace.Pair{I: g.i, J: g.minIdx},
					Info:   fmt.Sprintf("swap %d and %d", g.i, g.minIdx),
				})
			} else {
				step = g.emit(trace.Annotation{Kind: trace.KindNoSwap, Sorted: trace.Prefix(g.i + 1), Info: "no swap"})
			}
			g.i++
			g.phase = selOuter
			return step, true

		case selDone:
			g.phase = selExhausted
			return g.emit(trace.Annotation{Kind: trace.KindDone, Sorted: trace.Prefix(n), Info: "done"}), true

		default:
			return trace.Step{}, false
		}
	}
}

func (g *Selection) emit(ann trace.Annotation) trace.Step {
	return trace.Step{Array: g.a.Clone(), Annotation: ann}
}
