package stats

import (
	"errors"
	"math"
	"testing"
)

func TestCompute(t *testing.T) {
	s, err := Compute([]float64{3, 1, 2})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if s.Mean != 2 {
		t.Errorf("expected mean 2, got %f", s.Mean)
	}
	if s.Min != 1 {
		t.Errorf("expected min 1, got %f", s.Min)
	}
	if s.Max != 3 {
		t.Errorf("expected max 3, got %f", s.Max)
	}
}

func TestComputeSingle(t *testing.T) {
	s, err := Compute([]float64{-4.5})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if s.Mean != -4.5 || s.Min != -4.5 || s.Max != -4.5 {
		t.Errorf("expected all -4.5, got %+v", s)
	}
}

func TestComputeEmpty(t *testing.T) {
	_, err := Compute(nil)
	if !errors.Is(err, ErrNoSamples) {
		t.Errorf("expected ErrNoSamples, got %v", err)
	}
}

func TestCentroid(t *testing.T) {
	points := [][]float64{
		{0, 0, 0},
		{2, 4, 6},
	}
	c, err := Centroid(points)
	if err != nil {
		t.Fatalf("centroid failed: %v", err)
	}
	want := []float64{1, 2, 3}
	for i := range want {
		if c[i] != want[i] {
			t.Errorf("axis %d: expected %f, got %f", i, want[i], c[i])
		}
	}
}

func TestCentroidEmpty(t *testing.T) {
	_, err := Centroid(nil)
	if !errors.Is(err, ErrNoSamples) {
		t.Errorf("expected ErrNoSamples, got %v", err)
	}
}

func TestMagnitude(t *testing.T) {
	got := Magnitude([]float64{3, 4})
	if math.Abs(got-5) > 1e-12 {
		t.Errorf("expected 5, got %f", got)
	}
	if Magnitude(nil) != 0 {
		t.Error("expected zero magnitude for empty vector")
	}
}
