package metrics

import "github.com/san-kum/particlebox/internal/sim"

// BoundaryContacts counts particle observations that sit exactly on a wall,
// which is where the clamp leaves them after a reflection.
type BoundaryContacts struct {
	boundary float64
	contacts int
}

func NewBoundaryContacts(boundary float64) *BoundaryContacts {
	return &BoundaryContacts{boundary: boundary}
}

func (b *BoundaryContacts) Name() string { return "boundary_contacts" }

func (b *BoundaryContacts) Observe(particles []sim.Particle, t float64) {
	for i := range particles {
		for _, x := range particles[i].Position {
			if x == 0 || x == b.boundary {
				b.contacts++
				break
			}
		}
	}
}

func (b *BoundaryContacts) Value() float64 {
	return float64(b.contacts)
}

func (b *BoundaryContacts) Reset() {
	b.contacts = 0
}
