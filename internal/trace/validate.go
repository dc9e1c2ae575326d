package trace

import (
	"fmt"
	"slices"
)

// Validate checks tr against the invariants every trace of input must hold:
// it starts with "start" and nothing sorted, ends with "done" and every index
// sorted on the ascending permutation of input, keeps the multiset of values
// (a shift step counts the picked key as written back at its compare index),
// only references in-range indices and never shrinks the sorted set.
func Validate(input []int, tr Trace) error {
	if len(tr) < 2 {
		return &ValidationError{Step: len(tr), Reason: fmt.Sprintf("trace too short: %d steps", len(tr))}
	}

	want := slices.Clone(input)
	slices.Sort(want)

	first := tr[0]
	if first.Annotation.Info != "start" {
		return &ValidationError{Step: 0, Reason: fmt.Sprintf("expected info %q, got %q", "start", first.Annotation.Info)}
	}
	if first.Annotation.Sorted.Len() != 0 {
		return &ValidationError{Step: 0, Reason: "initial sorted set not empty"}
	}
	if !slices.Equal(first.Array, input) {
		return &ValidationError{Step: 0, Reason: "initial snapshot differs from input"}
	}

	var (
		prevSorted IndexSet
		key        int
		held       bool
	)
	for i, step := range tr {
		n := len(step.Array)
		if n != len(input) {
			return &ValidationError{Step: i, Reason: fmt.Sprintf("snapshot length %d, input length %d", n, len(input))}
		}
		for _, idx := range step.Annotation.Indices() {
			if idx < 0 || idx >= n {
				return &ValidationError{Step: i, Reason: fmt.Sprintf("index %d out of range [0,%d)", idx, n)}
			}
		}

		got := slices.Clone([]int(step.Array))
		switch step.Annotation.Kind {
		case KindPick:
			if len(step.Annotation.Active) != 1 {
				return &ValidationError{Step: i, Reason: "pick must mark exactly one active index"}
			}
			key, held = step.Array[step.Annotation.Active[0]], true
		case KindShift:
			// The key is held out of the array while larger values move
			// right, so the compare slot still holds a stale copy.
			if !held {
				return &ValidationError{Step: i, Reason: "shift without a picked key"}
			}
			if len(step.Annotation.Compare) != 1 {
				return &ValidationError{Step: i, Reason: "shift must mark exactly one compare index"}
			}
			got[step.Annotation.Compare[0]] = key
		default:
			held = false
		}
		slices.Sort(got)
		if !slices.Equal(got, want) {
			return &ValidationError{Step: i, Reason: "snapshot is not a permutation of the input"}
		}

		sorted := step.Annotation.Sorted
		if !slices.Equal(NewIndexSet(sorted...), sorted) {
			return &ValidationError{Step: i, Reason: fmt.Sprintf("sorted set %v is not ascending and unique", sorted)}
		}
		for _, idx := range prevSorted {
			if !sorted.Contains(idx) {
				return &ValidationError{Step: i, Reason: fmt.Sprintf("index %d left the sorted set", idx)}
			}
		}
		prevSorted = sorted
	}

	last, _ := tr.Final()
	if last.Annotation.Info != "done" {
		return &ValidationError{Step: len(tr) - 1, Reason: fmt.Sprintf("expected info %q, got %q", "done", last.Annotation.Info)}
	}
	if !slices.Equal([]int(last.Array), want) {
		return &ValidationError{Step: len(tr) - 1, Reason: "final snapshot is not sorted"}
	}
	if !slices.Equal([]int(last.Annotation.Sorted), []int(Prefix(len(input)))) {
		return &ValidationError{Step: len(tr) - 1, Reason: "final sorted set does not cover every index"}
	}
	return nil
}
