package metrics

import (
	"sort"

	"github.com/san-kum/sortviz/internal/trace"
)

// Metric observes trace steps in order and reduces them to a single value.
type Metric interface {
	Name() string
	Observe(step trace.Step)
	Value() float64
	Reset()
}

// KindCounter counts steps whose kind is in a fixed set.
type KindCounter struct {
	name  string
	kinds map[trace.StepKind]bool
	count int
}

func NewKindCounter(name string, kinds ...trace.StepKind) *KindCounter {
	set := make(map[trace.StepKind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return &KindCounter{name: name, kinds: set}
}

func (k *KindCounter) Name() string { return k.name }

func (k *KindCounter) Observe(step trace.Step) {
	if k.kinds[step.Annotation.Kind] {
		k.count++
	}
}

func (k *KindCounter) Value() float64 { return float64(k.count) }

func (k *KindCounter) Reset() { k.count = 0 }

// Steps counts every step.
type Steps struct {
	count int
}

func NewSteps() *Steps { return &Steps{} }

func (s *Steps) Name() string            { return "steps" }
func (s *Steps) Observe(step trace.Step) { s.count++ }
func (s *Steps) Value() float64          { return float64(s.count) }
func (s *Steps) Reset()                  { s.count = 0 }

// Writes counts array positions whose value changed between consecutive
// snapshots.
type Writes struct {
	prev   trace.Snapshot
	writes int
}

func NewWrites() *Writes { return &Writes{} }

func (w *Writes) Name() string { return "writes" }

func (w *Writes) Observe(step trace.Step) {
	if w.prev != nil && len(w.prev) == len(step.Array) {
		for i := range step.Array {
			if step.Array[i] != w.prev[i] {
				w.writes++
			}
		}
	}
	w.prev = step.Array
}

func (w *Writes) Value() float64 { return float64(w.writes) }

func (w *Writes) Reset() {
	w.prev = nil
	w.writes = 0
}

// Defaults returns the metrics reported after a render.
func Defaults() []Metric {
	return []Metric{
		NewSteps(),
		NewKindCounter("shifts", trace.KindShift),
		NewKindCounter("scans", trace.KindCompare),
		NewKindCounter("new_min", trace.KindNewMin),
		NewKindCounter("swaps", trace.KindSwap),
		NewWrites(),
	}
}

// Recorder feeds steps to a set of metrics.
type Recorder struct {
	metrics []Metric
}

func NewRecorder(ms ...Metric) *Recorder {
	for _, m := range ms {
		m.Reset()
	}
	return &Recorder{metrics: ms}
}

func (r *Recorder) Observe(step trace.Step) {
	for _, m := range r.metrics {
		m.Observe(step)
	}
}

func (r *Recorder) Values() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names returns metric names in sorted order.
func (r *Recorder) Names() []string {
	names := make([]string, 0, len(r.metrics))
	for _, m := range r.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}
