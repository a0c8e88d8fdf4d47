package smooth

// Service exposes the package functions as methods so it can be handed to
// code that accepts a smoothing collaborator.
type Service struct{}

// WeightedMovingAverage calls the package level WeightedMovingAverage.
func (Service) WeightedMovingAverage(series []float64, halfWindow int) []float64 {
	return WeightedMovingAverage(series, halfWindow)
}

// SimpleMovingAverage calls the package level SimpleMovingAverage.
func (Service) SimpleMovingAverage(series []float64, halfWindow int) []float64 {
	return SimpleMovingAverage(series, halfWindow)
}

// WeightedMovingAverage returns the linearly weighted moving average of
// series. The result has the same length; halfWindow <= 0 returns a copy.
func WeightedMovingAverage(series []float64, halfWindow int) []float64 {
	return Apply(series, WeightedKernel(halfWindow))
}

// SimpleMovingAverage returns the unweighted moving average of series over
// 2*halfWindow+1 samples. The result has the same length; halfWindow <= 0
// returns a copy.
func SimpleMovingAverage(series []float64, halfWindow int) []float64 {
	return Apply(series, BoxKernel(halfWindow))
}

// WeightedKernel returns the triangular kernel of 2*halfWindow+1 taps.
func WeightedKernel(halfWindow int) []float64 {
	if halfWindow < 0 {
		halfWindow = 0
	}

	k := make([]float64, 2*halfWindow+1)
	for j := range k {
		d := j - halfWindow
		if d < 0 {
			d = -d
		}
		k[j] = float64(halfWindow + 1 - d)
	}

	return k
}

// BoxKernel returns the flat kernel of 2*halfWindow+1 taps.
func BoxKernel(halfWindow int) []float64 {
	if halfWindow < 0 {
		halfWindow = 0
	}

	k := make([]float64, 2*halfWindow+1)
	for j := range k {
		k[j] = 1
	}

	return k
}

// Apply smooths series with an odd-length kernel centred on each sample.
// Kernel taps that reach past either end of the series weigh the centre
// sample instead. The output is normalised by the kernel sum.
//
// Apply returns nil for an empty series and a copy of series for kernels
// shorter than three taps or with a zero sum.
func Apply(series, kernel []float64) []float64 {
	n := len(series)
	if n == 0 {
		return nil
	}

	out := make([]float64, n)
	half := len(kernel) / 2

	var norm float64
	for _, w := range kernel {
		norm += w
	}

	if half == 0 || norm == 0 {
		copy(out, series)
		return out
	}

	inRange := correlateSame(series, kernel)

	for i := range out {
		sum := inRange[i]
		if i < half || i >= n-half {
			sum += series[i] * outsideWeight(i, n, kernel)
		}
		out[i] = sum / norm
	}

	return out
}

// outsideWeight sums the kernel taps that fall outside [0, n) when the
// kernel is centred on sample i.
func outsideWeight(i, n int, kernel []float64) float64 {
	half := len(kernel) / 2

	var w float64
	for j := -half; j <= half; j++ {
		if k := i + j; k < 0 || k >= n {
			w += kernel[j+half]
		}
	}

	return w
}
