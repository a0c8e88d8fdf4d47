// Package chrom defines the sample types shared by the chromatogram
// processing packages.
//
// A chromatogram is an ordered trace of samples. Each sample carries the
// caller's identifier, a position (retention or drift time), the mass the
// trace was extracted at and the measured intensity. Positions are expected
// to be non-decreasing; [Trace.Validate] checks this for callers that load
// traces from untrusted sources.
//
// # Usage
//
//	trace := chrom.FromIntensities(intensities)
//	if err := trace.Validate(); err != nil {
//		return err
//	}
//	peaks := peak.NewDetector(peak.WithMinimumAmplitude(500)).Detect(trace)
package chrom
