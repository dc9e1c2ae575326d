package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/sortviz/internal/sorts"
	"github.com/san-kum/sortviz/internal/trace"
)

// Factory builds a fresh generator over values.
type Factory func(values []int) trace.Generator

type Registry struct {
	algorithms map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{
		algorithms: make(map[string]Factory),
	}

	r.algorithms["insertion"] = func(v []int) trace.Generator { return sorts.NewInsertion(v) }
	r.algorithms["selection"] = func(v []int) trace.Generator { return sorts.NewSelection(v) }

	return r
}

func (r *Registry) Get(name string) (Factory, error) {
	fn, ok := r.algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", trace.ErrInvalidAlgorithm, name, r.List())
	}
	return fn, nil
}

// New validates name and returns a generator positioned before its first step.
func (r *Registry) New(name string, values []int) (trace.Generator, error) {
	fn, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return fn(values), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
