package stats

import (
	"errors"
	"math"
)

// ErrNoSamples is returned when statistics are requested over an empty
// sequence. With a positive particle count this indicates a caller bug.
var ErrNoSamples = errors.New("stats: no samples")

// Summary holds the basic statistics over a numeric sequence.
type Summary struct {
	Mean float64
	Min  float64
	Max  float64
}

func Compute(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrNoSamples
	}

	s := Summary{Min: values[0], Max: values[0]}
	sum := 0.0
	for _, v := range values {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(len(values))
	return s, nil
}

// Centroid returns the per-axis mean of a set of points. All points must
// share the dimensionality of the first one.
func Centroid(points [][]float64) ([]float64, error) {
	if len(points) == 0 {
		return nil, ErrNoSamples
	}

	dims := len(points[0])
	centroid := make([]float64, dims)
	for _, p := range points {
		for i := 0; i < dims && i < len(p); i++ {
			centroid[i] += p[i]
		}
	}
	for i := range centroid {
		centroid[i] /= float64(len(points))
	}
	return centroid, nil
}

// Magnitude returns the euclidean norm of a vector.
func Magnitude(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
