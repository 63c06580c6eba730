// Package physics implements the per-step particle update: gravity, position
// integration, and boundary handling. Particles are independent, so the
// update order carries no meaning.
package physics

import (
	"math"

	"github.com/san-kum/particlebox/internal/config"
	"github.com/san-kum/particlebox/internal/sim"
)

type Engine struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// ApplyGravity accelerates the last axis (the vertical one) by -g*dt.
func (e *Engine) ApplyGravity(p *sim.Particle) {
	if !e.cfg.EnableGravity || len(p.Velocity) == 0 {
		return
	}
	last := len(p.Velocity) - 1
	p.Velocity[last] -= e.cfg.GravityConstant * e.cfg.Timestep
}

// Integrate advances the position by velocity*dt on every axis.
func (e *Engine) Integrate(p *sim.Particle) {
	for i := range p.Position {
		p.Position[i] += p.Velocity[i] * e.cfg.Timestep
	}
}

// ApplyBounds keeps every coordinate inside [0, boundary_size]. With
// collisions enabled the wall is elastic: the coordinate is clamped and the
// velocity component reflected inward. With collisions disabled the
// coordinate is clamped and the component zeroed.
func (e *Engine) ApplyBounds(p *sim.Particle) {
	for i := range p.Position {
		if p.Position[i] < 0 {
			p.Position[i] = 0
			if e.cfg.EnableCollisions {
				p.Velocity[i] = math.Abs(p.Velocity[i])
			} else {
				p.Velocity[i] = 0
			}
		} else if p.Position[i] > e.cfg.BoundarySize {
			p.Position[i] = e.cfg.BoundarySize
			if e.cfg.EnableCollisions {
				p.Velocity[i] = -math.Abs(p.Velocity[i])
			} else {
				p.Velocity[i] = 0
			}
		}
	}
}

func (e *Engine) UpdateParticle(p *sim.Particle) {
	e.ApplyGravity(p)
	e.Integrate(p)
	e.ApplyBounds(p)
}

// Apply runs one full step over the particle slice, satisfying sim.Stepper.
func (e *Engine) Apply(particles []sim.Particle) {
	for i := range particles {
		e.UpdateParticle(&particles[i])
	}
}
