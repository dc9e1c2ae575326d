package sorts_test

import (
	"math/rand/v2"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/sorts"
	"github.com/san-kum/sortviz/internal/trace"
)

type factory func([]int) trace.Generator

var generators = map[string]factory{
	"insertion": func(v []int) trace.Generator { return sorts.NewInsertion(v) },
	"selection": func(v []int) trace.Generator { return sorts.NewSelection(v) },
}

func randomInputs(seed uint64, count int) [][]int {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	inputs := [][]int{{}, {1}, {1, 1}, {2, 1}, {1, 2, 3}, {3, 2, 1}, {5, -2, 5, 0, -2}}
	for i := 0; i < count; i++ {
		n := rng.IntN(24)
		in := make([]int, n)
		for k := range in {
			in[k] = rng.IntN(10) - 3
		}
		inputs = append(inputs, in)
	}
	return inputs
}

func multiset(s []int) []int {
	c := slices.Clone(s)
	slices.Sort(c)
	return c
}

// settled returns each snapshot with the held insertion key written back at
// the compare index of shift steps, so every entry is a full permutation.
func settled(tr trace.Trace) [][]int {
	out := make([][]int, len(tr))
	key := 0
	for i, step := range tr {
		a := slices.Clone([]int(step.Array))
		switch step.Annotation.Kind {
		case trace.KindPick:
			key = a[step.Annotation.Active[0]]
		case trace.KindShift:
			a[step.Annotation.Compare[0]] = key
		}
		out[i] = a
	}
	return out
}

var _ = Describe("trace generators", func() {
	inputs := randomInputs(7, 60)

	for _, name := range []string{"insertion", "selection"} {
		newGen := generators[name]
		Context(name, func() {
			It("ends on the ascending permutation of the input", func() {
				for _, in := range inputs {
					tr := trace.Collect(newGen(in))
					last, ok := tr.Final()
					Expect(ok).To(BeTrue())
					Expect([]int(last.Array)).To(Equal(multiset(in)), "input %v", in)
				}
			})

			It("preserves the multiset between consecutive snapshots", func() {
				for _, in := range inputs {
					snaps := settled(trace.Collect(newGen(in)))
					for i := 1; i < len(snaps); i++ {
						Expect(multiset(snaps[i])).To(Equal(multiset(snaps[i-1])), "input %v step %d", in, i)
					}
				}
			})

			It("changes the raw snapshot only by shifting while a key is held", func() {
				for _, in := range inputs {
					for i, step := range trace.Collect(newGen(in)) {
						if step.Annotation.Kind == trace.KindShift {
							continue
						}
						Expect(multiset(step.Array)).To(Equal(multiset(in)), "input %v step %d", in, i)
					}
				}
			})

			It("only references in-range indices", func() {
				for _, in := range inputs {
					for i, step := range trace.Collect(newGen(in)) {
						for _, idx := range step.Annotation.Indices() {
							Expect(idx).To(And(BeNumerically(">=", 0), BeNumerically("<", len(step.Array))), "input %v step %d", in, i)
						}
					}
				}
			})

			It("grows the sorted set monotonically from empty to full", func() {
				for _, in := range inputs {
					tr := trace.Collect(newGen(in))
					Expect(tr[0].Annotation.Info).To(Equal("start"))
					Expect(tr[0].Annotation.Sorted.Len()).To(BeZero())
					prev := 0
					for _, step := range tr {
						Expect(step.Annotation.Sorted.Len()).To(BeNumerically(">=", prev))
						prev = step.Annotation.Sorted.Len()
					}
					last := tr[len(tr)-1]
					Expect(last.Annotation.Info).To(Equal("done"))
					Expect(last.Annotation.Sorted).To(Equal(trace.Prefix(len(in))))
				}
			})

			It("passes trace validation", func() {
				for _, in := range inputs {
					Expect(trace.Validate(in, trace.Collect(newGen(in)))).To(Succeed(), "input %v", in)
				}
			})

			It("is deterministic across invocations", func() {
				for _, in := range inputs {
					Expect(trace.Collect(newGen(in))).To(Equal(trace.Collect(newGen(in))))
				}
			})
		})
	}

	DescribeTable("minimal traces",
		func(name string, in []int, want int) {
			Expect(trace.Collect(generators[name](in))).To(HaveLen(want))
		},
		Entry("insertion n=0", "insertion", []int{}, 2),
		Entry("insertion n=1", "insertion", []int{4}, 2),
		Entry("selection n=0", "selection", []int{}, 2),
		Entry("selection n=1", "selection", []int{4}, 3),
	)
})
