// Package robust provides order statistics used for noise and baseline
// estimation on chromatogram traces.
package robust

import (
	"math"
	"sort"
)

// Median returns the median of values without modifying them. For an even
// count the two middle values are averaged. Returns 0 for an empty slice.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 != 0 {
		return sorted[mid]
	}

	return (sorted[mid-1] + sorted[mid]) / 2
}

// Extremes holds the minimum and maximum of a series with their positions.
// On ties the first occurrence wins.
type Extremes struct {
	Min    float64
	MinPos int
	Max    float64
	MaxPos int
}

// Range returns Max - Min.
func (e Extremes) Range() float64 {
	return e.Max - e.Min
}

// FindExtremes scans values once. For an empty slice Min is +Inf, Max is
// -Inf and both positions are -1.
func FindExtremes(values []float64) Extremes {
	e := Extremes{
		Min:    math.Inf(1),
		MinPos: -1,
		Max:    math.Inf(-1),
		MaxPos: -1,
	}

	for i, v := range values {
		if v < e.Min {
			e.Min = v
			e.MinPos = i
		}

		if v > e.Max {
			e.Max = v
			e.MaxPos = i
		}
	}

	return e
}

// Summary holds whole-trace statistics.
type Summary struct {
	Length int
	Extremes
	Mean   float64
	Median float64
}

// Summarize computes a Summary of values. An empty slice yields a zero
// Length and the empty Extremes.
func Summarize(values []float64) Summary {
	s := Summary{
		Length:   len(values),
		Extremes: FindExtremes(values),
	}

	if s.Length == 0 {
		return s
	}

	// Welford update keeps the mean stable on long traces.
	var mean float64
	for i, v := range values {
		mean += (v - mean) / float64(i+1)
	}

	s.Mean = mean
	s.Median = Median(values)

	return s
}
