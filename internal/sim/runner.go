package sim

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/san-kum/particlebox/internal/config"
	"github.com/san-kum/particlebox/internal/logging"
)

// Runner drives a State with a Stepper until the iteration limit, sampling
// statistics every interval and feeding metrics and observers along the way.
type Runner struct {
	cfg       *config.Config
	state     *State
	stepper   Stepper
	metrics   []Metric
	observers []Observer
	logw      io.Writer
}

func NewRunner(cfg *config.Config, state *State, stepper Stepper) *Runner {
	return &Runner{
		cfg:     cfg,
		state:   state,
		stepper: stepper,
		logw:    os.Stdout,
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// SetLogWriter redirects the periodic statistics lines. Tests pass a buffer,
// the TUI passes io.Discard.
func (r *Runner) SetLogWriter(w io.Writer) { r.logw = w }

// Run executes the loop until the state finishes or the context is canceled.
// The state is initialized on first use; a finished state is restarted.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}

	if r.state.Status() != StatusRunning {
		r.state.Initialize()
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	interval := r.cfg.Interval()
	result := &Result{
		Frames:  make([]Frame, 0, r.cfg.MaxIterations/interval+2),
		Metrics: make(map[string]float64),
	}

	if err := r.sample(result); err != nil {
		return nil, err
	}

	start := time.Now()
	for r.state.Status() == StatusRunning {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range r.metrics {
			m.Observe(r.state.Particles(), r.state.Time())
		}

		if err := r.state.Step(r.stepper); err != nil {
			return result, err
		}

		for _, obs := range r.observers {
			obs.OnStep(r.state)
		}

		if r.state.Iteration()%interval == 0 || r.state.Status() == StatusFinished {
			if err := r.sample(result); err != nil {
				return result, err
			}
		}
	}

	result.Elapsed = time.Since(start)
	result.Iterations = r.state.Iteration()
	result.Particles = r.state.Particles()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Runner) sample(result *Result) error {
	frame, err := r.state.Sample()
	if err != nil {
		return fmt.Errorf("sample iteration %d: %w", r.state.Iteration(), err)
	}
	result.Frames = append(result.Frames, frame)
	logging.Logf(r.logw, logging.LevelInfo, "iteration %d/%d particles=%d avg_pos=[%s] speed avg=%.3f min=%.3f max=%.3f",
		frame.Iteration, r.cfg.MaxIterations, len(r.state.Particles()),
		formatAxes(frame.Centroid), frame.Speed.Mean, frame.Speed.Min, frame.Speed.Max)
	return nil
}

func formatAxes(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.2f", x)
	}
	return strings.Join(parts, " ")
}
