package peak

import (
	"math"

	"github.com/cwbudde/algo-chrom/stats/robust"
)

const (
	// noiseCandidateRatio bounds noise candidates to this fraction of the
	// channel maximum.
	noiseCandidateRatio = 0.05

	// noiseFloor replaces a channel floor when no candidate exists.
	noiseFloor = 0.0001
)

// NoiseModel holds the three noise floors of a trace. None of them is ever
// zero.
type NoiseModel struct {
	AmplitudeNoise float64
	SlopeNoise     float64
	PeaktopNoise   float64
}

// NewNoiseModel estimates the noise floors as medians of the small non-zero
// amplitude steps, slopes and negative curvatures of the trace.
func NewNoiseModel(smoothed []float64, p DerivativeProfile, c Calibration) NoiseModel {
	amplitudeLimit := c.MaxAmplitudeDiff * noiseCandidateRatio
	slopeLimit := c.MaxFirstDiff * noiseCandidateRatio
	peaktopLimit := c.MaxSecondDiff * noiseCandidateRatio

	var amplitude, slope, peaktop []float64

	n := len(smoothed)
	for i := derivativeHalfWidth; i < n-derivativeHalfWidth; i++ {
		if d := math.Abs(smoothed[i+1] - smoothed[i]); isNoiseCandidate(d, amplitudeLimit) {
			amplitude = append(amplitude, d)
		}

		if d := math.Abs(p.First[i]); isNoiseCandidate(d, slopeLimit) {
			slope = append(slope, d)
		}

		if s := p.Second[i]; s < 0 && isNoiseCandidate(-s, peaktopLimit) {
			peaktop = append(peaktop, -s)
		}
	}

	return NoiseModel{
		AmplitudeNoise: floorMedian(amplitude),
		SlopeNoise:     floorMedian(slope),
		PeaktopNoise:   floorMedian(peaktop),
	}
}

// IsAmplitudeNoise reports whether an amplitude step is below the
// amplitude floor times fold.
func (m NoiseModel) IsAmplitudeNoise(v, fold float64) bool {
	return v < m.AmplitudeNoise*fold
}

// IsSlopeNoise reports whether v exceeds the slope floor times fold. A true
// result means the slope is significant, which is how peak starts are
// recognised.
func (m NoiseModel) IsSlopeNoise(v, fold float64) bool {
	return v > m.SlopeNoise*fold
}

// IsNotPeaktopNoise reports whether a curvature magnitude exceeds the
// peak-top floor.
func (m NoiseModel) IsNotPeaktopNoise(v float64) bool {
	return v > m.PeaktopNoise
}

func isNoiseCandidate(v, limit float64) bool {
	return v > 0 && v < limit
}

func floorMedian(candidates []float64) float64 {
	if len(candidates) == 0 {
		return noiseFloor
	}
	return robust.Median(candidates)
}
