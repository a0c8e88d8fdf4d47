// Package peak detects chromatographic peaks in a single intensity trace
// and scores their shape.
//
// Detection runs one left-to-right scan over a twice weighted-smoothed copy
// of the trace:
//
//   - DerivativeProfile: 5-point first and second finite differences
//   - NoiseModel: amplitude, slope and peak-top noise floors
//   - EdgeSearch: state machine that walks from a peak start to its right edge
//   - LoopGuard: stops the scan when right-edge refinement keeps landing on
//     the same sample near the end of the trace
//   - Curate: clips flanks that reach far beyond the expected peak width
//   - Baseline: global noise level from binned residual fluctuations
//   - ShapeScorer: HWHM, symmetry, Gaussian similarity, slope ideality and
//     purity computed from the raw intensities
//
// Candidates that fail a gate are dropped silently; an empty result is a
// normal outcome. The only programmer error is building a range whose left
// index exceeds its right index, which panics.
//
// A Detector holds immutable configuration only, so one Detector may serve
// many goroutines, each processing its own trace.
//
// # Usage
//
//	d := peak.NewDetector(
//		peak.WithMinimumDatapoints(3),
//		peak.WithMinimumAmplitude(50),
//	)
//	for _, p := range d.Detect(trace) {
//		fmt.Printf("%d: top %.2f S/N %.1f\n", p.PeakID, p.TopPosition, p.SignalToNoise)
//	}
package peak
