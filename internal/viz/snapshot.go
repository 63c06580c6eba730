package viz

import "github.com/san-kum/particlebox/internal/sim"

// RenderCloud draws a particle snapshot on a fresh braille canvas, projecting
// the first axis horizontally and the vertical (last) axis upward.
func RenderCloud(particles []sim.Particle, boundary float64, dims, width, height int) string {
	canvas := NewCanvas(width, height)
	cw, ch := width*2, height*4
	vertical := dims - 1

	for _, p := range particles {
		if vertical >= len(p.Position) {
			continue
		}
		x := int(p.Position[0] / boundary * float64(cw-1))
		y := ch - 1 - int(p.Position[vertical]/boundary*float64(ch-1))
		canvas.Set(x, y)
	}

	return canvas.String()
}
