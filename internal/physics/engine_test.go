package physics_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/particlebox/internal/config"
	"github.com/san-kum/particlebox/internal/physics"
	"github.com/san-kum/particlebox/internal/sim"
)

var _ = Describe("Engine", func() {
	var (
		cfg    *config.Config
		engine *physics.Engine
	)

	BeforeEach(func() {
		cfg = config.Default()
		cfg.Timestep = 0.1
		cfg.BoundarySize = 10.0
		cfg.GravityConstant = 9.81
		engine = physics.New(cfg)
	})

	particle := func(pos, vel []float64) sim.Particle {
		return sim.Particle{Position: pos, Velocity: vel, Mass: 1.0}
	}

	Describe("ApplyGravity", func() {
		It("accelerates only the vertical component", func() {
			p := particle([]float64{5, 5, 5}, []float64{1, 1, 1})
			engine.ApplyGravity(&p)

			Expect(p.Velocity[0]).To(Equal(1.0))
			Expect(p.Velocity[1]).To(Equal(1.0))
			Expect(p.Velocity[2]).To(BeNumerically("~", 1-9.81*0.1, 1e-12))
		})

		It("does nothing when gravity is disabled", func() {
			cfg.EnableGravity = false
			p := particle([]float64{5, 5, 5}, []float64{0, 0, 0})
			engine.ApplyGravity(&p)

			Expect(p.Velocity).To(Equal([]float64{0, 0, 0}))
		})

		It("uses the last axis in two dimensions", func() {
			p := particle([]float64{5, 5}, []float64{0, 0})
			engine.ApplyGravity(&p)

			Expect(p.Velocity[0]).To(Equal(0.0))
			Expect(p.Velocity[1]).To(BeNumerically("<", 0))
		})
	})

	Describe("Integrate", func() {
		It("moves each coordinate by velocity times timestep", func() {
			p := particle([]float64{1, 2, 3}, []float64{10, -10, 0})
			engine.Integrate(&p)

			Expect(p.Position[0]).To(BeNumerically("~", 2.0, 1e-12))
			Expect(p.Position[1]).To(BeNumerically("~", 1.0, 1e-12))
			Expect(p.Position[2]).To(Equal(3.0))
		})
	})

	Describe("ApplyBounds", func() {
		It("clamps at the lower wall and reflects outward velocity", func() {
			p := particle([]float64{-0.5, 5, 5}, []float64{-2, 0, 0})
			engine.ApplyBounds(&p)

			Expect(p.Position[0]).To(Equal(0.0))
			Expect(p.Velocity[0]).To(Equal(2.0))
		})

		It("clamps at the upper wall and reflects inward", func() {
			p := particle([]float64{5, 10.7, 5}, []float64{0, 3, 0})
			engine.ApplyBounds(&p)

			Expect(p.Position[1]).To(Equal(10.0))
			Expect(p.Velocity[1]).To(Equal(-3.0))
		})

		It("zeroes the velocity component when collisions are disabled", func() {
			cfg.EnableCollisions = false
			p := particle([]float64{11, 5, -1}, []float64{4, 0, -4})
			engine.ApplyBounds(&p)

			Expect(p.Position[0]).To(Equal(10.0))
			Expect(p.Velocity[0]).To(Equal(0.0))
			Expect(p.Position[2]).To(Equal(0.0))
			Expect(p.Velocity[2]).To(Equal(0.0))
		})

		It("leaves interior particles alone", func() {
			p := particle([]float64{5, 5, 5}, []float64{1, -1, 2})
			engine.ApplyBounds(&p)

			Expect(p.Position).To(Equal([]float64{5, 5, 5}))
			Expect(p.Velocity).To(Equal([]float64{1, -1, 2}))
		})
	})

	Describe("Apply", func() {
		It("keeps every coordinate inside the boundary over many steps", func() {
			rng := rand.New(rand.NewSource(7))
			particles := make([]sim.Particle, 20)
			for i := range particles {
				pos := make([]float64, 3)
				vel := make([]float64, 3)
				for d := range pos {
					pos[d] = rng.Float64() * cfg.BoundarySize
					vel[d] = rng.Float64()*20 - 10
				}
				particles[i] = sim.Particle{ID: i, Position: pos, Velocity: vel, Mass: 1}
			}

			for step := 0; step < 500; step++ {
				engine.Apply(particles)
				for _, p := range particles {
					for _, x := range p.Position {
						Expect(x).To(And(
							BeNumerically(">=", 0),
							BeNumerically("<=", cfg.BoundarySize),
						))
					}
				}
			}
		})

		It("bounces a dropped particle off the floor", func() {
			particles := []sim.Particle{particle([]float64{5, 5, 5}, []float64{0, 0, 0})}

			touchedFloor := false
			for step := 0; step < 1000; step++ {
				engine.Apply(particles)
				z := particles[0].Position[2]
				Expect(z).To(And(
					BeNumerically(">=", 0),
					BeNumerically("<=", cfg.BoundarySize),
				))
				if z == 0 {
					touchedFloor = true
				}
			}

			Expect(touchedFloor).To(BeTrue())
			Expect(particles[0].Position[0]).To(Equal(5.0), "horizontal axes are untouched")
			Expect(particles[0].Position[1]).To(Equal(5.0))
		})
	})
})
