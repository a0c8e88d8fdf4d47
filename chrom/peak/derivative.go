package peak

import "math"

// Savitzky-Golay style 5-point smoothed derivative coefficients.
var (
	firstDiffCoeffs  = [5]float64{-0.2, -0.1, 0, 0.1, 0.2}
	secondDiffCoeffs = [5]float64{0.142857, -0.071429, -0.142857, -0.071429, 0.142857}
)

// derivativeHalfWidth is the number of boundary samples at each end whose
// derivatives are zero.
const derivativeHalfWidth = len(firstDiffCoeffs) / 2

// DerivativeProfile holds first and second differences aligned with the
// smoothed trace.
type DerivativeProfile struct {
	First  []float64
	Second []float64
}

// NewDerivativeProfile computes the 5-point derivatives of smoothed.
// Boundary samples stay zero.
func NewDerivativeProfile(smoothed []float64) DerivativeProfile {
	n := len(smoothed)
	p := DerivativeProfile{
		First:  make([]float64, n),
		Second: make([]float64, n),
	}

	for i := derivativeHalfWidth; i < n-derivativeHalfWidth; i++ {
		var first, second float64
		for j := range firstDiffCoeffs {
			v := smoothed[i+j-derivativeHalfWidth]
			first += firstDiffCoeffs[j] * v
			second += secondDiffCoeffs[j] * v
		}
		p.First[i] = first
		p.Second[i] = second
	}

	return p
}

// Len returns the number of samples covered.
func (p DerivativeProfile) Len() int {
	return len(p.First)
}

// Calibration holds the trace maxima that scale the noise candidates.
type Calibration struct {
	MaxFirstDiff     float64 // max |first difference|
	MaxSecondDiff    float64 // max -second difference over negative values
	MaxAmplitudeDiff float64 // max |smoothed[i] - smoothed[i-1]|
}

// Calibrate folds the interior samples of smoothed and p into the maxima
// used by NewNoiseModel. All maxima are zero for traces without interior
// samples.
func Calibrate(smoothed []float64, p DerivativeProfile) Calibration {
	var c Calibration

	n := len(smoothed)
	for i := derivativeHalfWidth; i < n-derivativeHalfWidth; i++ {
		c.MaxFirstDiff = math.Max(c.MaxFirstDiff, math.Abs(p.First[i]))

		if s := p.Second[i]; s < 0 {
			c.MaxSecondDiff = math.Max(c.MaxSecondDiff, -s)
		}

		c.MaxAmplitudeDiff = math.Max(c.MaxAmplitudeDiff, math.Abs(smoothed[i]-smoothed[i-1]))
	}

	return c
}
