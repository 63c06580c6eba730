package metrics

import (
	"math"

	"github.com/san-kum/particlebox/internal/sim"
	"github.com/san-kum/particlebox/internal/stats"
)

// Spread reports the mean distance of particles from their centroid,
// averaged over all observations. It drops toward zero when gravity piles
// the cloud onto the floor.
type Spread struct {
	total   float64
	samples int
}

func NewSpread() *Spread {
	return &Spread{}
}

func (s *Spread) Name() string { return "spread" }

func (s *Spread) Observe(particles []sim.Particle, t float64) {
	if len(particles) == 0 {
		return
	}

	positions := make([][]float64, len(particles))
	for i := range particles {
		positions[i] = particles[i].Position
	}
	centroid, err := stats.Centroid(positions)
	if err != nil {
		return
	}

	sum := 0.0
	for _, pos := range positions {
		d := 0.0
		for i := range pos {
			diff := pos[i] - centroid[i]
			d += diff * diff
		}
		sum += math.Sqrt(d)
	}
	s.total += sum / float64(len(particles))
	s.samples++
}

func (s *Spread) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Spread) Reset() {
	s.total = 0
	s.samples = 0
}
