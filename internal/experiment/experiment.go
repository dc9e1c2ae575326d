package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/sortviz/internal/trace"
)

// Consumer receives trace steps strictly in order.
type Consumer interface {
	Consume(index int, step trace.Step) error
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc func(index int, step trace.Step) error

func (f ConsumerFunc) Consume(index int, step trace.Step) error { return f(index, step) }

type Config struct {
	Algorithm string
	Values    []int
}

type Experiment struct {
	cfg Config
	gen trace.Generator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup resolves the algorithm. An unknown name fails here, before any step
// is produced.
func (e *Experiment) Setup(registry *Registry) error {
	gen, err := registry.New(e.cfg.Algorithm, e.cfg.Values)
	if err != nil {
		return err
	}
	e.gen = gen
	return nil
}

// Run pulls every step and hands it to the consumers in order. It returns the
// number of steps delivered.
func (e *Experiment) Run(ctx context.Context, consumers ...Consumer) (int, error) {
	if e.gen == nil {
		return 0, fmt.Errorf("experiment not setup")
	}
	return Run(ctx, e.gen, consumers...)
}

// Generator returns the underlying generator for callers that pull it themselves.
func (e *Experiment) Generator() trace.Generator {
	return e.gen
}

// Run drives gen to exhaustion. Cancelling ctx stops pulling between steps.
func Run(ctx context.Context, gen trace.Generator, consumers ...Consumer) (int, error) {
	count := 0
	for {
		select {
		case <-ctx.Done():
			return count, ctx.Err()
		default:
		}

		step, ok := gen.Next()
		if !ok {
			return count, nil
		}
		for _, c := range consumers {
			if err := c.Consume(count, step); err != nil {
				return count, fmt.Errorf("step %d: %w", count, err)
			}
		}
		count++
	}
}
