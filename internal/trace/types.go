package trace

import "sort"

// Snapshot is the full array state at one instant of a sort run.
type Snapshot []int

func (s Snapshot) Clone() Snapshot {
	c := make(Snapshot, len(s))
	copy(c, s)
	return c
}

// IsSorted reports whether the snapshot is in ascending order.
func (s Snapshot) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}

// Max returns the largest value, or 0 for an empty snapshot.
func (s Snapshot) Max() int {
	m := 0
	for i, v := range s {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// IndexSet is a set of array indices kept in ascending order.
type IndexSet []int

// Prefix returns the set {0..k-1}.
func Prefix(k int) IndexSet {
	if k <= 0 {
		return IndexSet{}
	}
	s := make(IndexSet, k)
	for i := range s {
		s[i] = i
	}
	return s
}

func NewIndexSet(idx ...int) IndexSet {
	s := make(IndexSet, 0, len(idx))
	seen := make(map[int]bool, len(idx))
	for _, i := range idx {
		if !seen[i] {
			seen[i] = true
			s = append(s, i)
		}
	}
	sort.Ints(s)
	return s
}

func (s IndexSet) Len() int { return len(s) }

func (s IndexSet) Contains(i int) bool {
	k := sort.SearchInts(s, i)
	return k < len(s) && s[k] == i
}

// Pair is two indices that were just exchanged.
type Pair struct {
	I int `json:"i"`
	J int `json:"j"`
}

// StepKind classifies a step by the event it narrates.
type StepKind int

const (
	KindStart StepKind = iota
	KindPick
	KindShift
	KindPlace
	KindCompare
	KindNewMin
	KindSwap
	KindNoSwap
	KindDone
)

var kindNames = [...]string{
	KindStart:   "start",
	KindPick:    "pick",
	KindShift:   "shift",
	KindPlace:   "place",
	KindCompare: "compare",
	KindNewMin:  "new-min",
	KindSwap:    "swap",
	KindNoSwap:  "no-swap",
	KindDone:    "done",
}

func (k StepKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

func (k StepKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Annotation describes why a snapshot is interesting. Every field is
// optional: nil slices and pointers mean "absent".
type Annotation struct {
	Kind     StepKind `json:"kind"`
	Sorted   IndexSet `json:"sorted,omitempty"`
	Active   []int    `json:"active,omitempty"`
	Compare  []int    `json:"compare,omitempty"`
	MinIndex *int     `json:"min_index,omitempty"`
	Swap     *Pair    `json:"swap,omitempty"`
	Info     string   `json:"info"`
}

// Indices returns every index referenced by the annotation.
func (a Annotation) Indices() []int {
	out := make([]int, 0, len(a.Sorted)+len(a.Active)+len(a.Compare)+3)
	out = append(out, a.Sorted...)
	out = append(out, a.Active...)
	out = append(out, a.Compare...)
	if a.MinIndex != nil {
		out = append(out, *a.MinIndex)
	}
	if a.Swap != nil {
		out = append(out, a.Swap.I, a.Swap.J)
	}
	return out
}

// Step is one element of a trace.
type Step struct {
	Array      Snapshot   `json:"array"`
	Annotation Annotation `json:"annotation"`
}

// Generator produces the steps of one sort run in order. Next returns false
// once the run is exhausted; further calls keep returning false.
type Generator interface {
	Next() (Step, bool)
}

// Trace is the full ordered sequence of steps from one generator.
type Trace []Step

// Collect drains gen into a Trace.
func Collect(gen Generator) Trace {
	var tr Trace
	for {
		step, ok := gen.Next()
		if !ok {
			return tr
		}
		tr = append(tr, step)
	}
}

// Final returns the last step, or false for an empty trace.
func (t Trace) Final() (Step, bool) {
	if len(t) == 0 {
		return Step{}, false
	}
	return t[len(t)-1], true
}

// Int returns a pointer to v, for filling optional annotation fields.
func Int(v int) *int { return &v }
