// Package tui is the plain-ANSI fallback renderer for terminals where the
// full TUI is unwanted. It attaches to a run as a sim.Observer.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/san-kum/particlebox/internal/config"
	"github.com/san-kum/particlebox/internal/sim"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

const defaultFrameRate = 30

type LiveRenderer struct {
	cfg       *config.Config
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	out       io.Writer
}

// NewLiveRenderer builds a renderer drawing at most frameRate frames per
// second. Non-positive rates fall back to the default.
func NewLiveRenderer(cfg *config.Config, frameRate int) *LiveRenderer {
	if frameRate < 1 {
		frameRate = defaultFrameRate
	}
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{cfg: cfg, frameRate: frameRate, canvas: canvas, out: os.Stdout}
}

// SetOutput redirects the rendered frames.
func (r *LiveRenderer) SetOutput(w io.Writer) { r.out = w }

// OnStep redraws the cloud, rate-limited to the configured frame rate.
func (r *LiveRenderer) OnStep(s *sim.State) {
	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.clear()
	r.drawParticles(s)
	r.render(s)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) drawParticles(s *sim.State) {
	vertical := r.cfg.Dimensions - 1
	for _, p := range s.Particles() {
		x := int(p.Position[0] / r.cfg.BoundarySize * float64(width-1))
		y := height - 1 - int(p.Position[vertical]/r.cfg.BoundarySize*float64(height-1))

		// Heavier particles get a heavier glyph.
		c := '.'
		if p.Mass > 1.5 {
			c = 'O'
		} else if p.Mass > 1.0 {
			c = 'o'
		}
		r.set(x, y, c)
	}
}

func (r *LiveRenderer) render(s *sim.State) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  particlebox  iteration %d/%d  t=%.2fs\n",
		s.Iteration(), r.cfg.MaxIterations, s.Time()))
	b.WriteString("  +" + strings.Repeat("-", width) + "+\n")

	for _, row := range r.canvas {
		b.WriteString("  |")
		b.WriteString(string(row))
		b.WriteString("|\n")
	}

	b.WriteString("  +" + strings.Repeat("-", width) + "+\n")

	if frame, err := s.Sample(); err == nil {
		b.WriteString(fmt.Sprintf("  speed avg=%.2f min=%.2f max=%.2f\n",
			frame.Speed.Mean, frame.Speed.Min, frame.Speed.Max))
	}

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
