package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/particlebox/internal/sim"
)

type ExportData struct {
	ID            string             `json:"id"`
	Timestep      float64            `json:"timestep"`
	MaxIterations int                `json:"max_iterations"`
	ParticleCount int                `json:"particle_count"`
	Dimensions    int                `json:"dimensions"`
	BoundarySize  float64            `json:"boundary_size"`
	Gravity       float64            `json:"gravity_constant"`
	Frames        []ExportFrame      `json:"frames"`
	Metrics       map[string]float64 `json:"metrics"`
}

type ExportFrame struct {
	Iteration int       `json:"iteration"`
	Time      float64   `json:"time"`
	Centroid  []float64 `json:"centroid"`
	AvgSpeed  float64   `json:"avg_speed"`
	MinSpeed  float64   `json:"min_speed"`
	MaxSpeed  float64   `json:"max_speed"`
}

// ExportJSON writes a run's full statistics history as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		ID:            meta.ID,
		Timestep:      meta.Timestep,
		MaxIterations: meta.MaxIterations,
		ParticleCount: meta.ParticleCount,
		Dimensions:    meta.Dimensions,
		BoundarySize:  meta.BoundarySize,
		Gravity:       meta.Gravity,
		Frames:        make([]ExportFrame, len(frames)),
		Metrics:       meta.Metrics,
	}

	for i, frame := range frames {
		data.Frames[i] = ExportFrame{
			Iteration: frame.Iteration,
			Time:      frame.Time,
			Centroid:  frame.Centroid,
			AvgSpeed:  frame.Speed.Mean,
			MinSpeed:  frame.Speed.Min,
			MaxSpeed:  frame.Speed.Max,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// FramesFromSeries reconstructs statistics frames from a stored series.
func FramesFromSeries(series *Series, dims int) []sim.Frame {
	iterations := series.Column("iteration")
	times := series.Column("time")
	speeds := series.SpeedSummaries()

	axes := make([][]float64, dims)
	for i := 0; i < dims; i++ {
		axes[i] = series.Column(axisColumn(i))
	}

	frames := make([]sim.Frame, 0, len(iterations))
	for i := range iterations {
		frame := sim.Frame{Iteration: int(iterations[i])}
		if i < len(times) {
			frame.Time = times[i]
		}
		if i < len(speeds) {
			frame.Speed = speeds[i]
		}
		centroid := make([]float64, 0, dims)
		for _, axis := range axes {
			if i < len(axis) {
				centroid = append(centroid, axis[i])
			}
		}
		frame.Centroid = centroid
		frames = append(frames, frame)
	}
	return frames
}

func axisColumn(i int) string {
	return fmt.Sprintf("avg_x%d", i)
}
