package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/analysis"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/experiment"
	"github.com/san-kum/sortviz/internal/pipeline"
	"github.com/san-kum/sortviz/internal/trace"
)

// Scenario defines a batch of renders
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Jobs        []Job  `yaml:"jobs"`
}

// Job is a single render in a scenario. Zero fields keep the base config.
type Job struct {
	Algorithm string `yaml:"algorithm"`
	Preset    string `yaml:"preset"`
	N         int    `yaml:"n"`
	Seed      int64  `yaml:"seed"`
	FPS       int    `yaml:"fps"`
	Format    string `yaml:"format"`
	Out       string `yaml:"out"`
	Palette   string `yaml:"palette"`
	Values    []int  `yaml:"values"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Jobs) == 0 {
		return nil, fmt.Errorf("scenario %q has no jobs", scenario.Name)
	}

	return &scenario, nil
}

// Config layers job over base: preset first, then the job's own fields.
func (j Job) Config(base *config.Config) (*config.Config, error) {
	cfg := *base
	cfg.Values = nil
	if j.Algorithm != "" {
		cfg.Algorithm = j.Algorithm
	}
	if j.Preset != "" {
		p := config.GetPreset(cfg.Algorithm, j.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %s (available: %v)", j.Preset, cfg.Algorithm, config.ListPresets(cfg.Algorithm))
		}
		cfg.Apply(p)
	}
	cfg.Apply(&config.Config{
		N:       j.N,
		Seed:    j.Seed,
		FPS:     j.FPS,
		Format:  j.Format,
		Out:     j.Out,
		Palette: j.Palette,
		Values:  j.Values,
	})
	return &cfg, nil
}

// RunScenario renders every job in order and stops at the first failure.
func RunScenario(ctx context.Context, scenario *Scenario, r *pipeline.Renderer, base *config.Config, progress io.Writer) ([]*pipeline.Result, error) {
	results := make([]*pipeline.Result, 0, len(scenario.Jobs))

	for i, job := range scenario.Jobs {
		cfg, err := job.Config(base)
		if err != nil {
			return results, fmt.Errorf("job %d: %w", i+1, err)
		}
		fmt.Fprintf(progress, "Rendering job %d/%d: %s\n", i+1, len(scenario.Jobs), cfg.Algorithm)

		res, err := r.Render(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("job %d: %w", i+1, err)
		}
		results = append(results, res)
	}

	return results, nil
}

// Sweep measures one algorithm across input sizes
type Sweep struct {
	Algorithm string
	NMin      int
	NMax      int
	NumSteps  int
	Seed      int64
}

// SweepResult holds the counts for one input size
type SweepResult struct {
	N                 int
	Steps             int
	InitialInversions int
	Metrics           map[string]float64
}

// RunSweep traces the algorithm over evenly spaced sizes without rendering.
func RunSweep(ctx context.Context, sweep *Sweep, registry *experiment.Registry) ([]SweepResult, error) {
	if _, err := registry.Get(sweep.Algorithm); err != nil {
		return nil, err
	}
	if sweep.NumSteps < 1 || sweep.NMin < 0 || sweep.NMax < sweep.NMin {
		return nil, fmt.Errorf("invalid sweep range %d..%d in %d steps", sweep.NMin, sweep.NMax, sweep.NumSteps)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		n := sweep.NMin
		if sweep.NumSteps > 1 {
			n += i * (sweep.NMax - sweep.NMin) / (sweep.NumSteps - 1)
		}

		gen, err := registry.New(sweep.Algorithm, dataset.Permutation(n, sweep.Seed))
		if err != nil {
			return nil, err
		}
		var tr trace.Trace
		collect := experiment.ConsumerFunc(func(_ int, step trace.Step) error {
			tr = append(tr, step)
			return nil
		})
		if _, err := experiment.Run(ctx, gen, collect); err != nil {
			return results, err
		}

		s := analysis.Summarize(tr)
		results = append(results, SweepResult{
			N:                 n,
			Steps:             s.Steps,
			InitialInversions: s.InitialInversions,
			Metrics:           s.Metrics,
		})
	}

	return results, nil
}
