package sim

import (
	"math/rand"
	"time"

	"github.com/san-kum/particlebox/internal/config"
	"github.com/san-kum/particlebox/internal/stats"
)

// State owns the particle collection, the monotonic iteration counter, and
// the lifecycle status. It starts idle; Initialize moves it to running and
// Step flips it to finished at the configured iteration limit.
type State struct {
	cfg       *config.Config
	particles []Particle
	iteration int
	status    Status
	rng       *rand.Rand
}

func NewState(cfg *config.Config) *State {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &State{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Initialize populates the particle collection with randomized positions
// inside the boundary, small random velocities, and masses in [0.5, 2.0).
// The iteration counter resets and the state becomes running. Calling it
// again restarts the simulation from a fresh cloud.
func (s *State) Initialize() {
	s.particles = make([]Particle, s.cfg.ParticleCount)
	for i := range s.particles {
		position := make([]float64, s.cfg.Dimensions)
		velocity := make([]float64, s.cfg.Dimensions)
		for d := 0; d < s.cfg.Dimensions; d++ {
			position[d] = s.rng.Float64() * s.cfg.BoundarySize
			velocity[d] = s.rng.Float64()*2 - 1
		}
		s.particles[i] = Particle{
			ID:       i,
			Position: position,
			Velocity: velocity,
			Mass:     0.5 + s.rng.Float64()*1.5,
		}
	}
	s.iteration = 0
	s.status = StatusRunning
}

// Step delegates one physics update to the stepper, increments the iteration
// counter, and finishes the run once the counter reaches max_iterations.
func (s *State) Step(stepper Stepper) error {
	switch s.status {
	case StatusIdle:
		return ErrNotInitialized
	case StatusFinished:
		return ErrFinished
	}

	stepper.Apply(s.particles)
	s.iteration++

	if s.iteration >= s.cfg.MaxIterations {
		s.status = StatusFinished
	}
	return nil
}

func (s *State) Particles() []Particle { return s.particles }
func (s *State) Iteration() int        { return s.iteration }
func (s *State) Status() Status        { return s.status }

// Time is the simulated time corresponding to the current iteration.
func (s *State) Time() float64 {
	return float64(s.iteration) * s.cfg.Timestep
}

func (s *State) Speeds() []float64 {
	speeds := make([]float64, len(s.particles))
	for i := range s.particles {
		speeds[i] = s.particles[i].Speed()
	}
	return speeds
}

func (s *State) Positions() [][]float64 {
	positions := make([][]float64, len(s.particles))
	for i := range s.particles {
		positions[i] = s.particles[i].Position
	}
	return positions
}

// Sample aggregates the current particle cloud into a statistics frame.
func (s *State) Sample() (Frame, error) {
	centroid, err := stats.Centroid(s.Positions())
	if err != nil {
		return Frame{}, err
	}
	speed, err := stats.Compute(s.Speeds())
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		Iteration: s.iteration,
		Time:      s.Time(),
		Centroid:  centroid,
		Speed:     speed,
	}, nil
}
