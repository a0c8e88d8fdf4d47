package testutil

import (
	"math"
	"math/rand"
)

// GaussianPeak describes one synthetic chromatographic peak.
type GaussianPeak struct {
	Center float64 // sample index of the apex
	Sigma  float64 // standard deviation in samples
	Height float64 // apex height above the baseline
}

// Chromatogram builds a trace of length samples sitting on a flat baseline
// with the given Gaussian peaks added on top.
func Chromatogram(length int, baseline float64, peaks ...GaussianPeak) []float64 {
	out := DC(baseline, length)
	for _, p := range peaks {
		AddGaussian(out, p)
	}
	return out
}

// AddGaussian adds p to dst in place.
func AddGaussian(dst []float64, p GaussianPeak) {
	if p.Sigma <= 0 {
		return
	}

	twoSigmaSq := 2 * p.Sigma * p.Sigma
	for i := range dst {
		d := float64(i) - p.Center
		dst[i] += p.Height * math.Exp(-d*d/twoSigmaSq)
	}
}

// Ramp returns a trace that stays at base up to and including index start
// and then rises by slope per sample until the end.
func Ramp(length, start int, base, slope float64) []float64 {
	out := DC(base, length)
	for i := start + 1; i < length; i++ {
		out[i] = base + slope*float64(i-start)
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// AddNoise adds seeded uniform noise of the given amplitude to dst in place.
func AddNoise(dst []float64, seed int64, amplitude float64) {
	noise := DeterministicNoise(seed, amplitude, len(dst))
	for i := range dst {
		dst[i] += noise[i]
	}
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
