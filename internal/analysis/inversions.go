package analysis

import "github.com/san-kum/sortviz/internal/trace"

// Inversions counts pairs i < j with s[i] > s[j].
func Inversions(s trace.Snapshot) int {
	buf := s.Clone()
	tmp := make([]int, len(buf))
	return countMerge(buf, tmp)
}

// countMerge sorts a in place and returns its inversion count.
func countMerge(a, tmp []int) int {
	n := len(a)
	if n < 2 {
		return 0
	}
	mid := n / 2
	count := countMerge(a[:mid], tmp[:mid]) + countMerge(a[mid:], tmp[mid:])

	i, j, k := 0, mid, 0
	for i < mid && j < n {
		if a[i] <= a[j] {
			tmp[k] = a[i]
			i++
		} else {
			tmp[k] = a[j]
			count += mid - i
			j++
		}
		k++
	}
	k += copy(tmp[k:], a[i:mid])
	copy(tmp[k:], a[j:])
	copy(a, tmp[:n])
	return count
}

// InversionSeries returns the inversion count of every snapshot in tr.
func InversionSeries(tr trace.Trace) []float64 {
	series := make([]float64, len(tr))
	for i, step := range tr {
		series[i] = float64(Inversions(step.Array))
	}
	return series
}
