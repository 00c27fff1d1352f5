package indicator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/logger"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/metrics"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
)

// Named is one labelled indicator result from an engine run.
type Named struct {
	Label  string
	Type   string
	Result Result
}

// Engine computes a set of indicators over one data set.
// Runs are sequential and independent; an Engine holds no per-run state, so
// one instance may serve concurrent Compute calls on separate inputs.
type Engine struct {
	registry *Registry
	prom     *metrics.Metrics
	log      *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithMetrics records per-indicator timings and failures.
func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) { e.prom = m }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an engine resolving indicator names through reg.
func NewEngine(reg *Registry, opts ...EngineOption) *Engine {
	e := &Engine{registry: reg, log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute runs every spec over data in order. All names are resolved before
// anything is computed, and the first failing spec aborts the run: either
// every result is returned or none is.
func (e *Engine) Compute(ctx context.Context, data model.Data, specs []Spec) ([]Named, error) {
	if logger.RunID(ctx) == "" {
		ctx = logger.WithRunID(ctx, logger.NewRunID())
	}
	log := e.log.With(logger.LogWithRun(ctx)...)
	start := time.Now()
	if e.prom != nil {
		e.prom.RunsTotal.Inc()
	}

	inds := make([]Indicator, len(specs))
	for i, spec := range specs {
		ind, err := e.registry.Lookup(spec.Type)
		if err != nil {
			e.fail(log, spec.Type, err)
			return nil, err
		}
		inds[i] = ind
	}

	bars := 0
	if data != nil {
		bars = data.Len()
	}
	log.Debug("engine run started", "indicators", len(specs), "bars", bars)

	results := make([]Named, 0, len(specs))
	for i, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t0 := time.Now()
		res, err := inds[i].Calculate(data, spec.Config)
		if err != nil {
			e.fail(log, inds[i].Name(), err)
			return nil, fmt.Errorf("spec %d: %w", i, err)
		}
		if e.prom != nil {
			e.prom.ObserveIndicator(inds[i].Name(), time.Since(t0), mathx.FirstValid(res.Values))
		}
		results = append(results, Named{
			Label:  spec.Label(res.Metadata.Length),
			Type:   inds[i].Name(),
			Result: res,
		})
	}

	if e.prom != nil {
		e.prom.BarsProcessed.Add(float64(bars))
		e.prom.RunDur.Observe(time.Since(start).Seconds())
	}
	log.Info("engine run complete", "indicators", len(results), "bars", bars, "elapsed", time.Since(start))
	return results, nil
}

func (e *Engine) fail(log *slog.Logger, name string, err error) {
	kind := ErrorKind(err)
	if e.prom != nil {
		e.prom.ObserveFailure(name, kind)
	}
	log.Warn("indicator rejected", "indicator", name, "kind", kind, "error", err)
}
