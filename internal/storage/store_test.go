package storage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/particlebox/internal/config"
	"github.com/san-kum/particlebox/internal/sim"
	"github.com/san-kum/particlebox/internal/stats"
)

func testResult() *sim.Result {
	return &sim.Result{
		Frames: []sim.Frame{
			{Iteration: 0, Time: 0, Centroid: []float64{50, 50, 50}, Speed: stats.Summary{Mean: 1.0, Min: 0.1, Max: 1.7}},
			{Iteration: 200, Time: 2, Centroid: []float64{50, 50, 30}, Speed: stats.Summary{Mean: 5.0, Min: 0.5, Max: 9.5}},
		},
		Metrics:    map[string]float64{"kinetic_energy": 12.5},
		Iterations: 200,
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.Default()
	cfg.Seed = 42

	runID, err := store.Save(cfg, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "sim_") {
		t.Errorf("unexpected run id: %s", runID)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, meta.ID)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Iterations != 200 {
		t.Errorf("expected 200 iterations, got %d", meta.Iterations)
	}
	if meta.Metrics["kinetic_energy"] != 12.5 {
		t.Errorf("metrics not round-tripped: %v", meta.Metrics)
	}
}

func TestSaveUniqueRunIDs(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	first, err := store.Save(config.Default(), testResult())
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	second, err := store.Save(config.Default(), testResult())
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	if first == second {
		t.Fatalf("consecutive saves share run id %s", first)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestList(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := store.Save(config.Default(), testResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	store := New(t.TempDir() + "/absent")
	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadSeries(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := store.Save(config.Default(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	series, err := store.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(series.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(series.Rows))
	}

	avgSpeed := series.Column("avg_speed")
	if len(avgSpeed) != 2 || avgSpeed[0] != 1.0 || avgSpeed[1] != 5.0 {
		t.Errorf("unexpected avg_speed column: %v", avgSpeed)
	}
	if series.Column("no_such_column") != nil {
		t.Error("expected nil for unknown column")
	}

	z := series.Column("avg_x2")
	if len(z) != 2 || z[1] != 30 {
		t.Errorf("unexpected avg_x2 column: %v", z)
	}
}

func TestFramesFromSeries(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.Default()
	result := testResult()
	runID, err := store.Save(cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	series, err := store.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	frames := FramesFromSeries(series, cfg.Dimensions)
	if len(frames) != len(result.Frames) {
		t.Fatalf("expected %d frames, got %d", len(result.Frames), len(frames))
	}
	if frames[1].Iteration != 200 {
		t.Errorf("expected iteration 200, got %d", frames[1].Iteration)
	}
	if frames[1].Speed.Max != 9.5 {
		t.Errorf("expected max speed 9.5, got %f", frames[1].Speed.Max)
	}
	if frames[1].Centroid[2] != 30 {
		t.Errorf("expected centroid z 30, got %f", frames[1].Centroid[2])
	}
}

func TestParticleSnapshot(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.Default()
	result := testResult()
	result.Particles = []sim.Particle{
		{ID: 0, Mass: 1.5, Position: []float64{1, 2, 3}, Velocity: []float64{-0.5, 0, 0.5}},
		{ID: 1, Mass: 0.75, Position: []float64{4, 5, 6}, Velocity: []float64{0, 1, 0}},
	}

	runID, err := store.Save(cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	particles, err := store.LoadParticles(runID, cfg.Dimensions)
	if err != nil {
		t.Fatalf("load particles failed: %v", err)
	}
	if len(particles) != 2 {
		t.Fatalf("expected 2 particles, got %d", len(particles))
	}
	if particles[1].ID != 1 || particles[1].Mass != 0.75 {
		t.Errorf("unexpected particle: %+v", particles[1])
	}
	if particles[0].Position[2] != 3 || particles[0].Velocity[0] != -0.5 {
		t.Errorf("snapshot not round-tripped: %+v", particles[0])
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{
		ID:            "sim_1",
		ParticleCount: 100,
		Dimensions:    3,
		Metrics:       map[string]float64{"spread": 2.0},
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, testResult().Frames); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"id": "sim_1"`, `"avg_speed": 5`, `"spread": 2`} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %s:\n%s", want, out)
		}
	}
}
