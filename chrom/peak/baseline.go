package peak

import (
	"github.com/cwbudde/algo-chrom/stats/robust"
)

// Baseline is the global noise estimate of one trace.
type Baseline struct {
	IntensityMedian float64
	IsHighBaseline  bool
	NoiseLevel      float64
	NoiseFactor     float64
	// QualifiedBins is the number of bins with a non-zero range.
	QualifiedBins int
}

// NewBaseline estimates the noise level from the residual between the
// detection-smoothed trace and a wide simple moving average of the raw
// trace.
func NewBaseline(raw, smoothed []float64, s Smoother, cfg BaselineConfig) Baseline {
	wide := s.SimpleMovingAverage(s.SimpleMovingAverage(raw, cfg.SmoothingLevel), cfg.SmoothingLevel)

	residual := make([]float64, len(smoothed))
	for i := range residual {
		residual[i] = max(0, smoothed[i]-wide[i])
	}

	ranges := binRanges(residual, cfg.BinSize)

	b := Baseline{
		IntensityMedian: robust.Median(raw),
		NoiseLevel:      cfg.MinNoiseLevel,
		NoiseFactor:     cfg.NoiseFactor,
		QualifiedBins:   len(ranges),
	}

	if len(ranges) >= cfg.MinNoiseBinCount {
		b.NoiseLevel = robust.Median(ranges)
	}

	b.IsHighBaseline = b.IntensityMedian > b.Threshold()

	return b
}

// binRanges returns max-min of each consecutive bin of size samples. The
// trailing partial bin counts; bins with a zero range are skipped.
func binRanges(values []float64, size int) []float64 {
	var ranges []float64
	for start := 0; start < len(values); start += size {
		end := min(start+size, len(values))
		if r := robust.FindExtremes(values[start:end]).Range(); r > 0 {
			ranges = append(ranges, r)
		}
	}
	return ranges
}

// Threshold returns NoiseLevel * NoiseFactor.
func (b Baseline) Threshold() float64 {
	return b.NoiseLevel * b.NoiseFactor
}

// IsNoise reports whether a peak height is below the threshold.
func (b Baseline) IsNoise(height float64) bool {
	return height < b.Threshold()
}

// IsNoiseIfHighBaseline reports whether intensity is within one threshold
// of the trace median on an elevated background. It is always false when
// the background is not elevated.
func (b Baseline) IsNoiseIfHighBaseline(intensity float64) bool {
	return b.IsHighBaseline && intensity < b.IntensityMedian+b.Threshold()
}
