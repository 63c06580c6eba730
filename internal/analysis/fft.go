// Package analysis offers frequency analysis over stored statistics series.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a power-of-two length
// sequence via radix-2 Cooley-Tukey.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum zero-pads the input to a power of two and returns the
// magnitude of the positive-frequency half.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	fft := FFT(padded)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// BinFrequency converts a spectrum bin index to hertz for a series of the
// given length and sample spacing. PowerSpectrum zero-pads to a power of
// two, so bin k maps to k/(padded*spacing), not k/(samples*spacing).
func BinFrequency(bin, samples int, sampleInterval float64) float64 {
	if samples == 0 || sampleInterval <= 0 {
		return 0
	}
	padded := 1
	for padded < samples {
		padded *= 2
	}
	return float64(bin) / (float64(padded) * sampleInterval)
}

// DominantFrequency returns the index of the strongest non-DC bin of a
// spectrum, or 0 when the spectrum is flat.
func DominantFrequency(spectrum []float64) int {
	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(spectrum); i++ {
		if spectrum[i] > maxPower {
			maxPower = spectrum[i]
			maxIdx = i
		}
	}
	return maxIdx
}
