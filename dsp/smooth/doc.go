// Package smooth provides length-preserving moving averages for ordered
// intensity series.
//
// Two kernels are offered:
//
//   - Weighted (triangular): sample i is weighted halfWindow+1-|j| at offset j
//   - Simple (box): every offset in [-halfWindow, halfWindow] weighs 1
//
// Neighbours that fall outside the series are replaced by the centre sample,
// so every output sample is normalised by the full kernel weight and a
// constant series passes through unchanged.
//
// Kernels up to 64 taps are applied directly in the time domain; longer
// kernels go through an FFT convolution.
//
// # Usage
//
//	smoothed := smooth.WeightedMovingAverage(smooth.WeightedMovingAverage(raw, 1), 1)
//	background := smooth.SimpleMovingAverage(smooth.SimpleMovingAverage(raw, 10), 10)
package smooth
