package peak

import "fmt"

// CandidatePeak is the raw output of one edge search: an inclusive sample
// range on the trace.
type CandidatePeak struct {
	Left  int
	Right int
}

// NewCandidatePeak builds a range and panics if left > right.
func NewCandidatePeak(left, right int) CandidatePeak {
	if left > right {
		panic(fmt.Sprintf("peak: candidate left edge %d after right edge %d", left, right))
	}
	return CandidatePeak{Left: left, Right: right}
}

// Width returns the number of samples in the range.
func (c CandidatePeak) Width() int {
	return c.Right - c.Left + 1
}

// CuratedPeak is a candidate after flank clipping, with its apex.
type CuratedPeak struct {
	Left  int
	Top   int
	Right int
}

// NewCuratedPeak builds a curated range and panics if left > right or the
// top lies outside the range.
func NewCuratedPeak(left, top, right int) CuratedPeak {
	if left > right {
		panic(fmt.Sprintf("peak: curated left edge %d after right edge %d", left, right))
	}

	if top < left || top > right {
		panic(fmt.Sprintf("peak: top %d outside range [%d, %d]", top, left, right))
	}

	return CuratedPeak{Left: left, Top: top, Right: right}
}

// Width returns the number of samples in the range.
func (c CuratedPeak) Width() int {
	return c.Right - c.Left + 1
}

// argmax returns the index of the first maximum of values in [left, right].
func argmax(values []float64, left, right int) int {
	best := left
	for i := left + 1; i <= right; i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
