// Package pipeline renders one configured sort run end to end: input,
// generator, exporter, metrics and the JSON manifest.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/experiment"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/render"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/trace"
)

type Result struct {
	Path     string
	Format   string
	Frames   int
	Manifest string
	Meta     storage.RenderMetadata
	Metrics  map[string]float64
}

type Renderer struct {
	Registry *experiment.Registry
	Store    *storage.Store
	Logger   *slog.Logger
	// Exporter overrides format lookup. Tests use it to capture frames.
	Exporter func(format, path string) (export.Exporter, error)
}

func NewRenderer(registry *experiment.Registry, store *storage.Store, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{
		Registry: registry,
		Store:    store,
		Logger:   logger,
		Exporter: export.ForFormat,
	}
}

// Input returns the explicit values of cfg, or a seeded permutation of 1..N.
func Input(cfg *config.Config) []int {
	if cfg.Values != nil {
		return slices.Clone(cfg.Values)
	}
	return dataset.Permutation(cfg.N, cfg.Seed)
}

// Title is the caption drawn above every frame.
func Title(algorithm string, n int, format string, fps int) string {
	name := algorithm
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("%s Sort | n=%d | %s @ %dfps", name, n, strings.ToUpper(format), fps)
}

func knownFormat(ext string) bool {
	return slices.Contains(export.Formats(), ext)
}

// Render runs cfg to completion. An unknown algorithm fails before any file
// is created.
func (r *Renderer) Render(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(export.CheckFormat); err != nil {
		return nil, err
	}
	values := Input(cfg)

	exp := experiment.New(experiment.Config{Algorithm: cfg.Algorithm, Values: values})
	if err := exp.Setup(r.Registry); err != nil {
		return nil, err
	}

	path, format := r.Store.Resolve(cfg.Algorithm, len(values), cfg.Format, cfg.Out, knownFormat)
	if err := storage.EnsureParent(path); err != nil {
		return nil, err
	}

	out, err := r.Exporter(format, path)
	if err != nil {
		return nil, err
	}
	pal := render.GetPalette(cfg.Palette)
	meta := export.Meta{
		Title:   Title(cfg.Algorithm, len(values), format, cfg.FPS),
		Width:   cfg.Width,
		Height:  cfg.Height,
		FPS:     cfg.FPS,
		Palette: pal,
	}
	if err := out.Begin(meta); err != nil {
		return nil, fmt.Errorf("begin %s: %w", format, err)
	}

	r.Logger.Debug("rendering", "algorithm", cfg.Algorithm, "n", len(values), "format", format, "path", path)

	sink := export.NewSink(out, trace.Snapshot(values).Max())
	rec := metrics.NewRecorder(metrics.Defaults()...)
	observe := experiment.ConsumerFunc(func(_ int, step trace.Step) error {
		rec.Observe(step)
		return nil
	})
	steps, runErr := exp.Run(ctx, sink, observe)
	if err := errors.Join(runErr, out.Close()); err != nil {
		return nil, err
	}

	md := storage.NewMetadata()
	md.Algorithm = cfg.Algorithm
	md.N = len(values)
	md.Seed = cfg.Seed
	md.FPS = cfg.FPS
	md.Format = format
	md.Output = path
	md.Frames = steps
	md.Width = cfg.Width
	md.Height = cfg.Height
	md.Palette = pal.Name

	manifest, err := storage.WriteManifest(md)
	if err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	r.Logger.Debug("rendered", "frames", sink.Frames(), "manifest", manifest)

	return &Result{
		Path:     path,
		Format:   format,
		Frames:   sink.Frames(),
		Manifest: manifest,
		Meta:     md,
		Metrics:  rec.Values(),
	}, nil
}
