// Package metrics provides sim.Metric implementations aggregated into a
// run's Result.
package metrics

import "github.com/san-kum/particlebox/internal/sim"

// KineticEnergy reports the mean kinetic energy of the cloud, averaged over
// all observations.
type KineticEnergy struct {
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{}
}

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(particles []sim.Particle, t float64) {
	if len(particles) == 0 {
		return
	}
	sum := 0.0
	for i := range particles {
		speed := particles[i].Speed()
		sum += 0.5 * particles[i].Mass * speed * speed
	}
	k.total += sum / float64(len(particles))
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}
