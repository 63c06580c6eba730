// Package storage persists finished runs under a data directory: one
// subdirectory per run holding the run metadata and the statistics series.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/particlebox/internal/config"
	"github.com/san-kum/particlebox/internal/sim"
	"github.com/san-kum/particlebox/internal/stats"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Seed          int64              `json:"seed"`
	Timestep      float64            `json:"timestep"`
	MaxIterations int                `json:"max_iterations"`
	ParticleCount int                `json:"particle_count"`
	Dimensions    int                `json:"dimensions"`
	BoundarySize  float64            `json:"boundary_size"`
	Gravity       float64            `json:"gravity_constant"`
	Iterations    int                `json:"iterations"`
	Metrics       map[string]float64 `json:"metrics"`
}

func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	// Nanosecond resolution keeps runs started back to back in separate
	// directories.
	runID := fmt.Sprintf("sim_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     time.Now(),
		Seed:          cfg.Seed,
		Timestep:      cfg.Timestep,
		MaxIterations: cfg.MaxIterations,
		ParticleCount: cfg.ParticleCount,
		Dimensions:    cfg.Dimensions,
		BoundarySize:  cfg.BoundarySize,
		Gravity:       cfg.GravityConstant,
		Iterations:    result.Iterations,
		Metrics:       result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	seriesFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer seriesFile.Close()

	if err := WriteSeries(seriesFile, cfg.Dimensions, result.Frames); err != nil {
		return "", err
	}

	if len(result.Particles) > 0 {
		particleFile, err := os.Create(filepath.Join(runDir, "particles.csv"))
		if err != nil {
			return "", err
		}
		defer particleFile.Close()

		if err := WriteParticles(particleFile, cfg.Dimensions, result.Particles); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// WriteParticles renders the final particle snapshot as CSV, one row per
// particle with position and velocity columns per axis.
func WriteParticles(f *os.File, dims int, particles []sim.Particle) error {
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"id", "mass"}
	for i := 0; i < dims; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	for i := 0; i < dims; i++ {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range particles {
		row := []string{
			strconv.Itoa(p.ID),
			strconv.FormatFloat(p.Mass, 'f', 6, 64),
		}
		for i := 0; i < dims; i++ {
			val := 0.0
			if i < len(p.Position) {
				val = p.Position[i]
			}
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		for i := 0; i < dims; i++ {
			val := 0.0
			if i < len(p.Velocity) {
				val = p.Velocity[i]
			}
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// LoadParticles reads a run's final particle snapshot.
func (s *Store) LoadParticles(runID string, dims int) ([]sim.Particle, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "particles.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Particle{}, nil
	}

	particles := make([]sim.Particle, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2+2*dims {
			continue
		}

		id, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		mass, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}

		p := sim.Particle{
			ID:       id,
			Mass:     mass,
			Position: make([]float64, dims),
			Velocity: make([]float64, dims),
		}
		for i := 0; i < dims; i++ {
			p.Position[i], _ = strconv.ParseFloat(record[2+i], 64)
			p.Velocity[i], _ = strconv.ParseFloat(record[2+dims+i], 64)
		}
		particles = append(particles, p)
	}

	return particles, nil
}

// WriteSeries renders the statistics frames as CSV with one avg_x column per
// axis.
func WriteSeries(f *os.File, dims int, frames []sim.Frame) error {
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"iteration", "time"}
	for i := 0; i < dims; i++ {
		header = append(header, fmt.Sprintf("avg_x%d", i))
	}
	header = append(header, "avg_speed", "min_speed", "max_speed")
	if err := w.Write(header); err != nil {
		return err
	}

	for _, frame := range frames {
		row := []string{
			strconv.Itoa(frame.Iteration),
			strconv.FormatFloat(frame.Time, 'f', 6, 64),
		}
		for i := 0; i < dims; i++ {
			val := 0.0
			if i < len(frame.Centroid) {
				val = frame.Centroid[i]
			}
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		row = append(row,
			strconv.FormatFloat(frame.Speed.Mean, 'f', 6, 64),
			strconv.FormatFloat(frame.Speed.Min, 'f', 6, 64),
			strconv.FormatFloat(frame.Speed.Max, 'f', 6, 64),
		)
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// Series is the stored statistics table of a run: one named column per CSV
// column, all rows parsed as float64.
type Series struct {
	Columns []string
	Rows    [][]float64
}

// Column returns the values of a named column, or nil if absent.
func (s *Series) Column(name string) []float64 {
	idx := -1
	for i, col := range s.Columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	values := make([]float64, 0, len(s.Rows))
	for _, row := range s.Rows {
		if idx < len(row) {
			values = append(values, row[idx])
		}
	}
	return values
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return &Series{}, nil
	}

	series := &Series{
		Columns: records[0],
		Rows:    make([][]float64, 0, len(records)-1),
	}

	for _, record := range records[1:] {
		row := make([]float64, 0, len(record))
		for _, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		series.Rows = append(series.Rows, row)
	}

	return series, nil
}

// SpeedSummaries rebuilds the per-frame speed summaries from a stored
// series, in frame order.
func (s *Series) SpeedSummaries() []stats.Summary {
	mean := s.Column("avg_speed")
	min := s.Column("min_speed")
	max := s.Column("max_speed")

	summaries := make([]stats.Summary, 0, len(mean))
	for i := range mean {
		summary := stats.Summary{Mean: mean[i]}
		if i < len(min) {
			summary.Min = min[i]
		}
		if i < len(max) {
			summary.Max = max[i]
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
