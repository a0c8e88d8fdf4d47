package peak

import (
	"math"

	"github.com/cwbudde/algo-chrom/chrom"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	// hwhmToSigma converts a Gaussian HWHM to its standard deviation.
	hwhmToSigma = 1.1774100225154747 // sqrt(2 ln 2)

	sqrtTwoPi = 2.5066282746310002

	minScoredSpan = 3
)

// Purity weights.
const (
	gaussianWeight   = 1.0
	basePeakWeight   = 1.2
	symmetryWeight   = 0.8
	idealSlopeWeight = 1.0
)

// ShapeScorer turns a curated range into a Record using raw intensities.
type ShapeScorer struct {
	trace      chrom.Trace
	raw        []float64
	positions  []float64
	noiseLevel float64
}

// NewShapeScorer returns a scorer for trace. noiseLevel is reported as the
// estimated noise of every record.
func NewShapeScorer(trace chrom.Trace, noiseLevel float64) *ShapeScorer {
	return &ShapeScorer{
		trace:      trace,
		raw:        trace.Intensities(),
		positions:  trace.Positions(),
		noiseLevel: noiseLevel,
	}
}

// halfShape holds the metrics of one flank.
type halfShape struct {
	height       float64
	halfIndex    int
	fivePctIndex int
	sharpness    float64
	hwhm         float64
	fivePctDist  float64
	area         float64
}

// Score computes the shape metrics of c. It returns false when the range
// spans three samples or fewer or the top is not strictly above both
// edges. PeakID and the amplitude ranking fields are left zero.
func (s *ShapeScorer) Score(c CuratedPeak) (Record, bool) {
	raw, pos := s.raw, s.positions
	l, t, r := c.Left, c.Top, c.Right

	if c.Width() <= minScoredSpan || raw[t] <= raw[l] || raw[t] <= raw[r] {
		return Record{}, false
	}

	lh := s.half(t, l)
	rh := s.half(t, r)

	maxH := math.Max(lh.height, rh.height)
	minH := math.Min(lh.height, rh.height)

	// The flank ending on the lower edge carries the full height.
	hwhm := lh.hwhm
	if rh.height > lh.height {
		hwhm = rh.hwhm
	}

	sigma := hwhm / hwhmToSigma
	gauss := (areaRatio(lh, sigma) + areaRatio(rh, sigma)) / 2

	symmetry := 0.0
	if hi := math.Max(lh.fivePctDist, rh.fivePctDist); hi > 0 {
		symmetry = math.Min(lh.fivePctDist, rh.fivePctDist) / hi
	}

	basePeak := minH / maxH
	idealSlope := s.idealSlope(c)

	purity := (gaussianWeight*gauss + basePeakWeight*basePeak +
		symmetryWeight*symmetry + idealSlopeWeight*idealSlope) / 4
	purity = math.Max(0, math.Min(1, purity))

	areaZero := s.trapezoid(l, r, 0)
	areaBaseline := areaZero - (raw[l]+raw[r])/2*(pos[r]-pos[l])

	return Record{
		LeftIndex:  l,
		TopIndex:   t,
		RightIndex: r,

		LeftID:  s.trace[l].ID,
		TopID:   s.trace[t].ID,
		RightID: s.trace[r].ID,

		LeftPosition:  pos[l],
		TopPosition:   pos[t],
		RightPosition: pos[r],
		TopMass:       s.trace[t].Mass,

		LeftIntensity:  float32(raw[l]),
		TopIntensity:   float32(raw[t]),
		RightIntensity: float32(raw[r]),

		HalfWidth:               float32(hwhm),
		ShapenessValue:          float32((lh.sharpness + rh.sharpness) / 2),
		SymmetryValue:           float32(symmetry),
		BasePeakValue:           float32(basePeak),
		IdealSlopeValue:         float32(idealSlope),
		GaussianSimilarityValue: float32(gauss),
		PeakPureValue:           float32(purity),

		AreaAboveZero:     float32(areaZero),
		AreaAboveBaseline: float32(areaBaseline),
		EstimatedNoise:    float32(s.noiseLevel),
		SignalToNoise:     float32(maxH / math.Max(1, s.noiseLevel)),
	}, true
}

// half measures the flank between top and edge. raw[top] > raw[edge]
// must hold.
func (s *ShapeScorer) half(top, edge int) halfShape {
	raw, pos := s.raw, s.positions

	dir := 1
	if edge < top {
		dir = -1
	}

	base := raw[edge]
	h := halfShape{height: raw[top] - base}
	halfTarget := base + 0.5*h.height
	fiveTarget := base + 0.05*h.height

	h.halfIndex, h.fivePctIndex = top, top
	bestHalf, bestFive := math.Inf(1), math.Inf(1)
	crossed := false

	for k := top + dir; ; k += dir {
		if d := math.Abs(raw[k] - halfTarget); d < bestHalf {
			bestHalf, h.halfIndex = d, k
		}

		if d := math.Abs(raw[k] - fiveTarget); d < bestFive {
			bestFive, h.fivePctIndex = d, k
		}

		if raw[top] > 0 {
			drop := (raw[top] - raw[k]) / float64(abs(k-top)) / mathSqrt(raw[top])
			h.sharpness = math.Max(h.sharpness, drop)
		}

		if !crossed && raw[k] <= halfTarget {
			crossed = true
			prev := k - dir
			frac := (raw[prev] - halfTarget) / (raw[prev] - raw[k])
			crossing := pos[prev] + frac*(pos[k]-pos[prev])
			h.hwhm = math.Abs(crossing - pos[top])
		}

		if k == edge {
			break
		}
	}

	h.fivePctDist = math.Abs(pos[h.fivePctIndex] - pos[top])
	h.area = s.trapezoid(min(top, edge), max(top, edge), base)

	return h
}

// areaRatio compares the measured flank area with the area of an ideal
// Gaussian flank of the same height.
func areaRatio(h halfShape, sigma float64) float64 {
	ideal := h.height * sigma * sqrtTwoPi / 2
	hi := math.Max(ideal, h.area)
	if hi <= 0 || h.area <= 0 {
		return 0
	}
	return math.Min(ideal, h.area) / hi
}

// trapezoid integrates raw - base over positions [from, to].
func (s *ShapeScorer) trapezoid(from, to int, base float64) float64 {
	if to <= from {
		return 0
	}

	m := to - from
	dx := make([]float64, m)
	mid := make([]float64, m)
	for j := 0; j < m; j++ {
		k := from + j
		dx[j] = s.positions[k+1] - s.positions[k]
		mid[j] = (s.raw[k]+s.raw[k+1])/2 - base
	}

	vecmath.MulBlockInPlace(dx, mid)

	var area float64
	for _, v := range dx {
		area += v
	}
	return area
}

// idealSlope returns 1 - reversed/monotone over both flanks, floored at 0.
func (s *ShapeScorer) idealSlope(c CuratedPeak) float64 {
	raw := s.raw

	var monotone, reversed float64
	for k := c.Left; k < c.Top; k++ {
		if d := raw[k+1] - raw[k]; d >= 0 {
			monotone += d
		} else {
			reversed -= d
		}
	}

	for k := c.Top; k < c.Right; k++ {
		if d := raw[k] - raw[k+1]; d >= 0 {
			monotone += d
		} else {
			reversed -= d
		}
	}

	if monotone == 0 {
		return 0
	}
	return math.Max(0, 1-reversed/monotone)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
