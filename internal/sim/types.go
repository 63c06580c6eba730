package sim

import (
	"time"

	"github.com/san-kum/particlebox/internal/stats"
)

// Particle is the unit simulated: a point with position and velocity of the
// configured dimensionality. Mass is randomized at initialization and only
// read by metrics.
type Particle struct {
	ID       int
	Position []float64
	Velocity []float64
	Mass     float64
}

func (p *Particle) Speed() float64 {
	return stats.Magnitude(p.Velocity)
}

// Status tracks the lifecycle of a simulation state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Stepper advances every particle by one timestep. The physics engine is the
// only production implementation.
type Stepper interface {
	Apply(particles []Particle)
}

// Metric accumulates a scalar over the run, observed once per step.
type Metric interface {
	Name() string
	Observe(particles []Particle, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(s *State)
}

// Frame is one periodic statistics sample of the particle cloud.
type Frame struct {
	Iteration int
	Time      float64
	Centroid  []float64
	Speed     stats.Summary
}

// Result collects everything a finished run produced, including the final
// particle snapshot.
type Result struct {
	Frames     []Frame
	Particles  []Particle
	Metrics    map[string]float64
	Iterations int
	Elapsed    time.Duration
}
