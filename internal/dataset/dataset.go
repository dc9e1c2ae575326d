// Package dataset builds input arrays for sort traces. All randomness in
// sortviz lives here; generators themselves are deterministic.
package dataset

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Permutation returns a random ordering of 1..n. The same seed always yields
// the same ordering.
func Permutation(n int, seed int64) []int {
	if n <= 0 {
		return []int{}
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1^0x5851f42d4c957f2d))
	values := make([]int, n)
	for i, p := range rng.Perm(n) {
		values[i] = p + 1
	}
	return values
}

// Reversed returns n..1.
func Reversed(n int) []int {
	if n <= 0 {
		return []int{}
	}
	values := make([]int, n)
	for i := range values {
		values[i] = n - i
	}
	return values
}

// Parse reads a comma or whitespace separated list of integers.
func Parse(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", f, err)
		}
		values = append(values, v)
	}
	return values, nil
}
