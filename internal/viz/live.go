// Package viz renders the live particle view as a bubbletea TUI: the cloud
// on a braille canvas next to a statistics panel.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/particlebox/internal/config"
	"github.com/san-kum/particlebox/internal/physics"
	"github.com/san-kum/particlebox/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	historyCapacity = 300
	stepsPerTick    = 4
)

type TickMsg time.Time

type Model struct {
	cfg       *config.Config
	state     *sim.State
	engine    *physics.Engine
	canvas    *Canvas
	speedHist []float64
	running   bool
}

func NewModel(cfg *config.Config) Model {
	state := sim.NewState(cfg)
	state.Initialize()

	return Model{
		cfg:       cfg,
		state:     state,
		engine:    physics.New(cfg),
		canvas:    NewCanvas(canvasWidth, canvasHeight),
		speedHist: make([]float64, 0, historyCapacity),
		running:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state.Initialize()
			m.speedHist = m.speedHist[:0]
			m.running = true
		case "g":
			m.cfg.EnableGravity = !m.cfg.EnableGravity
		case "c":
			m.cfg.EnableCollisions = !m.cfg.EnableCollisions
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance steps the simulation a few iterations per frame and records the
// average speed for the sparkline.
func (m *Model) advance() {
	for i := 0; i < stepsPerTick && m.state.Status() == sim.StatusRunning; i++ {
		if err := m.state.Step(m.engine); err != nil {
			return
		}
	}

	frame, err := m.state.Sample()
	if err != nil {
		return
	}
	m.speedHist = append(m.speedHist, frame.Speed.Mean)
	if len(m.speedHist) > historyCapacity {
		m.speedHist = m.speedHist[1:]
	}
}

func (m Model) View() string {
	m.drawParticles()

	var s strings.Builder
	s.WriteString(headerStyle.Render("PARTICLEBOX") + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	progress := float64(m.state.Iteration()) / float64(m.cfg.MaxIterations)
	s.WriteString(labelStyle.Render("Progress") + valueStyle.Render(ProgressBar(progress, 20)) + "\n")
	s.WriteString(labelStyle.Render("Iteration") +
		valueStyle.Render(fmt.Sprintf("%d/%d", m.state.Iteration(), m.cfg.MaxIterations)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.state.Time())) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", len(m.state.Particles()))) + "\n")
	s.WriteString(labelStyle.Render("Gravity") + valueStyle.Render(onOff(m.cfg.EnableGravity)) + "\n")
	s.WriteString(labelStyle.Render("Collisions") + valueStyle.Render(onOff(m.cfg.EnableCollisions)) + "\n")

	if len(m.speedHist) > 1 {
		chart := asciigraph.Plot(m.speedHist,
			asciigraph.Height(5),
			asciigraph.Width(30),
			asciigraph.Caption("avg speed"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Reset G:Gravity C:Collisions Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(s.String()),
	)
}

func (m Model) statusLine() string {
	switch {
	case m.state.Status() == sim.StatusFinished:
		return doneStyle.Render("FINISHED")
	case !m.running:
		return pausedStyle.Render("PAUSED")
	default:
		return statusStyle.Render("RUNNING")
	}
}

// drawParticles projects the first axis horizontally and the vertical (last)
// axis upward onto the sub-pixel grid.
func (m Model) drawParticles() {
	m.canvas.Clear()
	cw, ch := m.canvas.Width*2, m.canvas.Height*4
	vertical := m.cfg.Dimensions - 1

	for _, p := range m.state.Particles() {
		x := int(p.Position[0] / m.cfg.BoundarySize * float64(cw-1))
		y := ch - 1 - int(p.Position[vertical]/m.cfg.BoundarySize*float64(ch-1))
		m.canvas.Set(x, y)
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
