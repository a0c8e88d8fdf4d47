package chrom

import (
	"errors"
	"fmt"
)

// Errors returned by trace validation.
var (
	ErrUnorderedPositions = errors.New("chrom: positions must be non-decreasing")
	ErrNonFiniteValue     = errors.New("chrom: sample contains a non-finite value")
)

// Sample is a single point of a chromatogram.
type Sample struct {
	ID        int
	Position  float64 // retention or drift time
	Mass      float64
	Intensity float64
}

// Trace is an ordered chromatogram. The engine never mutates a Trace.
type Trace []Sample

// FromIntensities builds a trace whose IDs and positions equal the sample
// index. Mass is left at zero.
func FromIntensities(intensities []float64) Trace {
	if len(intensities) == 0 {
		return nil
	}

	t := make(Trace, len(intensities))
	for i, v := range intensities {
		t[i] = Sample{ID: i, Position: float64(i), Intensity: v}
	}

	return t
}

// Len returns the number of samples.
func (t Trace) Len() int { return len(t) }

// Intensities returns a copy of the intensity column.
func (t Trace) Intensities() []float64 {
	out := make([]float64, len(t))
	for i, s := range t {
		out[i] = s.Intensity
	}
	return out
}

// Positions returns a copy of the position column.
func (t Trace) Positions() []float64 {
	out := make([]float64, len(t))
	for i, s := range t {
		out[i] = s.Position
	}
	return out
}

// Validate reports the first sample that breaks position ordering or holds
// a NaN or infinite value. An empty trace is valid.
func (t Trace) Validate() error {
	for i, s := range t {
		if !isFinite(s.Position) || !isFinite(s.Intensity) || !isFinite(s.Mass) {
			return fmt.Errorf("%w: sample %d (id %d)", ErrNonFiniteValue, i, s.ID)
		}

		if i > 0 && s.Position < t[i-1].Position {
			return fmt.Errorf("%w: sample %d at %v follows %v", ErrUnorderedPositions, i, s.Position, t[i-1].Position)
		}
	}

	return nil
}

func isFinite(v float64) bool {
	return v == v && v-v == 0
}
