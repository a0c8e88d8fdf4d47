package peak

import (
	"encoding/json"
	"fmt"
)

// Rejection names the gate that dropped a candidate.
type Rejection int

const (
	RejectWidth Rejection = iota
	RejectBaselineNoise
	RejectAmplitude
	RejectAmplitudeNoise
	RejectHighBaseline
	RejectShape
	numRejections
)

func (r Rejection) String() string {
	switch r {
	case RejectWidth:
		return "width"
	case RejectBaselineNoise:
		return "baseline-noise"
	case RejectAmplitude:
		return "amplitude"
	case RejectAmplitudeNoise:
		return "amplitude-noise"
	case RejectHighBaseline:
		return "high-baseline"
	case RejectShape:
		return "shape"
	default:
		return "unknown"
	}
}

// RejectionCounts holds one counter per gate. It encodes to JSON as an
// object keyed by the gate name.
type RejectionCounts [numRejections]int

// MarshalJSON implements json.Marshaler.
func (c RejectionCounts) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, len(c))
	for r, n := range c {
		m[Rejection(r).String()] = n
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements json.Unmarshaler. Unknown gate names are an
// error; absent ones stay zero.
func (c *RejectionCounts) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	*c = RejectionCounts{}
	for name, n := range m {
		r, ok := rejectionByName(name)
		if !ok {
			return fmt.Errorf("peak: unknown rejection %q", name)
		}
		c[r] = n
	}
	return nil
}

func rejectionByName(name string) (Rejection, bool) {
	for r := RejectWidth; r < numRejections; r++ {
		if r.String() == name {
			return r, true
		}
	}
	return 0, false
}

// Stats describes one detection run.
type Stats struct {
	Candidates int
	Accepted   int
	Rejected   RejectionCounts
	// Terminated is set when the loop guard ended the scan early.
	Terminated bool

	Noise    NoiseModel
	Baseline Baseline
}

// RejectedBy returns the number of candidates dropped by gate r.
func (s Stats) RejectedBy(r Rejection) int {
	if r < 0 || r >= numRejections {
		return 0
	}
	return s.Rejected[r]
}
