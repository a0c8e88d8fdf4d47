package smooth

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// directThreshold is the longest kernel applied in the time domain.
const directThreshold = 64

// correlateSame returns out[i] = sum_j kernel[j+half] * x[i+j] over the
// offsets that stay inside x. The output has len(x) samples.
func correlateSame(x, kernel []float64) []float64 {
	if len(kernel) > directThreshold {
		out, err := fftCorrelateSame(x, kernel)
		if err == nil {
			return out
		}
	}

	return directCorrelateSame(x, kernel)
}

func directCorrelateSame(x, kernel []float64) []float64 {
	n := len(x)
	half := len(kernel) / 2
	out := make([]float64, n)

	for i := range out {
		lo := max(-half, -i)
		hi := min(half, n-1-i)

		var sum float64
		for j := lo; j <= hi; j++ {
			sum += kernel[j+half] * x[i+j]
		}
		out[i] = sum
	}

	return out
}

// fftCorrelateSame computes the same result as directCorrelateSame through a
// zero-padded linear convolution with the reversed kernel.
func fftCorrelateSame(x, kernel []float64) ([]float64, error) {
	n := len(x)
	m := len(kernel)
	fftSize := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("smooth: failed to create FFT plan: %w", err)
	}

	xs := make([]complex128, fftSize)
	ks := make([]complex128, fftSize)

	for i, v := range x {
		xs[i] = complex(v, 0)
	}

	for i, v := range kernel {
		ks[m-1-i] = complex(v, 0)
	}

	if err := plan.Forward(xs, xs); err != nil {
		return nil, fmt.Errorf("smooth: forward FFT failed: %w", err)
	}

	if err := plan.Forward(ks, ks); err != nil {
		return nil, fmt.Errorf("smooth: forward FFT failed: %w", err)
	}

	for i := range xs {
		xs[i] *= ks[i]
	}

	if err := plan.Inverse(xs, xs); err != nil {
		return nil, fmt.Errorf("smooth: inverse FFT failed: %w", err)
	}

	half := m / 2
	out := make([]float64, n)
	for i := range out {
		out[i] = real(xs[i+half])
	}

	return out, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
