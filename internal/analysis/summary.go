package analysis

import (
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/trace"
)

type Summary struct {
	Steps             int
	Kinds             map[trace.StepKind]int
	InitialInversions int
	Metrics           map[string]float64
}

func Summarize(tr trace.Trace) Summary {
	s := Summary{
		Steps: len(tr),
		Kinds: make(map[trace.StepKind]int),
	}
	rec := metrics.NewRecorder(metrics.Defaults()...)
	for _, step := range tr {
		s.Kinds[step.Annotation.Kind]++
		rec.Observe(step)
	}
	if len(tr) > 0 {
		s.InitialInversions = Inversions(tr[0].Array)
	}
	s.Metrics = rec.Values()
	return s
}
