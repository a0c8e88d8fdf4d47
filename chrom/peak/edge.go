package peak

import "math"

// maxEdgeWalk bounds every left backtrack and right-edge refinement walk.
const maxEdgeWalk = 5

// relaxedDatapoints is the minimum-datapoints value below which the relaxed
// top and right-edge tests apply.
const relaxedDatapoints = 1.5

type searchState int

const (
	stateIdle searchState = iota
	stateLeftEdgeFound
	stateTopSearching
	stateRightCandidateSearching
	stateRightEdgeRefining
	stateEmitted
)

func (s searchState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateLeftEdgeFound:
		return "left-edge-found"
	case stateTopSearching:
		return "top-searching"
	case stateRightCandidateSearching:
		return "right-candidate-searching"
	case stateRightEdgeRefining:
		return "right-edge-refining"
	case stateEmitted:
		return "emitted"
	default:
		return "unknown"
	}
}

// Step is the result of one EdgeSearch transition.
type Step struct {
	Next      int           // cursor for the next call
	Candidate CandidatePeak // valid when Found
	Found     bool
	Terminate bool // the loop guard fired; the scan must stop
}

// EdgeSearch walks the smoothed trace from a peak start to a candidate
// right edge. It keeps one LoopGuard for the whole scan, so a fresh
// EdgeSearch is needed per trace.
type EdgeSearch struct {
	raw      []float64
	smoothed []float64
	profile  DerivativeProfile
	noise    NoiseModel
	guard    *LoopGuard

	slopeFold     float64
	amplitudeFold float64
	minDatapoints float64
}

// NewEdgeSearch prepares a search over one trace. raw, smoothed and the
// profile must have the same length.
func NewEdgeSearch(raw, smoothed []float64, profile DerivativeProfile, noise NoiseModel, cfg Config) *EdgeSearch {
	return &EdgeSearch{
		raw:           raw,
		smoothed:      smoothed,
		profile:       profile,
		noise:         noise,
		guard:         NewLoopGuard(len(smoothed)),
		slopeFold:     cfg.SlopeNoiseFold,
		amplitudeFold: cfg.AmplitudeNoiseFold,
		minDatapoints: cfg.MinimumDatapoints,
	}
}

// IsPeakStart reports whether the slope at i and i+1 is above the slope
// noise fold.
func (e *EdgeSearch) IsPeakStart(i int) bool {
	first := e.profile.First
	if i < 0 || i+1 >= len(first) {
		return false
	}

	return e.noise.IsSlopeNoise(first[i], e.slopeFold) &&
		e.noise.IsSlopeNoise(first[i+1], e.slopeFold)
}

// Step runs the state machine from cursor. floor is the right edge of the
// previously emitted candidate; the left edge never moves below it.
//
// Without a peak start at cursor the step returns Next = cursor+1. A found
// candidate always advances the cursor by at least one sample.
func (e *EdgeSearch) Step(cursor, floor int) Step {
	var (
		left, top, right int
		topFound         bool
	)

	state := stateIdle
	for {
		switch state {
		case stateIdle:
			if !e.IsPeakStart(cursor) {
				return Step{Next: cursor + 1}
			}
			state = stateLeftEdgeFound

		case stateLeftEdgeFound:
			left = e.backtrackLeft(cursor, floor)
			state = stateTopSearching

		case stateTopSearching:
			top, topFound = e.searchTop(cursor)
			state = stateRightCandidateSearching

		case stateRightCandidateSearching:
			right = e.searchRightCandidate(top)
			state = stateRightEdgeRefining

		case stateRightEdgeRefining:
			var looped bool
			bound := left
			if topFound {
				bound = top + 1
			}
			right, looped = e.refineRight(bound, right)
			if looped {
				return Step{Next: len(e.smoothed), Terminate: true}
			}
			state = stateEmitted

		case stateEmitted:
			return Step{
				Next:      max(right, cursor+1),
				Candidate: NewCandidatePeak(left, right),
				Found:     true,
			}
		}
	}
}

// backtrackLeft walks left from the peak start to the first local minimum.
func (e *EdgeSearch) backtrackLeft(cursor, floor int) int {
	s := e.smoothed
	k := cursor
	for step := 0; step < maxEdgeWalk; step++ {
		if k-1 < floor || k-1 < 0 || s[k] <= s[k-1] {
			break
		}
		k--
	}
	return k
}

// searchTop advances until a top condition holds. Without one the top is
// the last interior sample and found is false.
func (e *EdgeSearch) searchTop(cursor int) (top int, found bool) {
	n := len(e.smoothed)
	i := cursor
	for i+1 < n-1 {
		i++
		if e.isTop(i) {
			return i, true
		}
	}
	return i, false
}

func (e *EdgeSearch) isTop(i int) bool {
	first, second := e.profile.First, e.profile.Second
	raw := e.raw
	n := len(raw)

	if first[i-1] > 0 && (first[i] < 0 || first[i+1] < 0) && e.noise.IsNotPeaktopNoise(-second[i]) {
		return true
	}

	if i >= 2 && i+2 < n &&
		raw[i-2] < raw[i-1] && raw[i-1] < raw[i] &&
		raw[i] > raw[i+1] && raw[i+1] > raw[i+2] {
		return true
	}

	if e.minDatapoints < relaxedDatapoints && i >= 1 &&
		raw[i-1] < raw[i] && raw[i] >= raw[i+1] {
		return true
	}

	return false
}

// searchRightCandidate advances from the top until a right-edge condition
// holds, skipping the first max(1, minDatapoints/2) samples.
func (e *EdgeSearch) searchRightCandidate(top int) int {
	n := len(e.smoothed)
	guard := math.Max(1, e.minDatapoints/2)

	i := top
	for i+1 < n-1 {
		i++
		if float64(i-top) < guard {
			continue
		}
		if e.isRightCandidate(i) {
			break
		}
	}
	return i
}

func (e *EdgeSearch) isRightCandidate(i int) bool {
	s := e.smoothed
	first := e.profile.First

	if !e.noise.IsSlopeNoise(-first[i], e.slopeFold) {
		return true
	}

	if i >= 2 &&
		e.noise.IsAmplitudeNoise(math.Abs(s[i-2]-s[i-1]), e.amplitudeFold) &&
		e.noise.IsAmplitudeNoise(math.Abs(s[i-1]-s[i]), e.amplitudeFold) {
		return true
	}

	if i >= 3 && s[i-3] <= s[i-2] && s[i-2] <= s[i-1] && s[i-1] <= s[i] {
		return true
	}

	if e.minDatapoints < relaxedDatapoints && i >= 1 && s[i-1] <= s[i] {
		return true
	}

	return false
}

// refineRight moves the candidate edge onto the nearest turning point. An
// edge sitting on a rising slope overshot and walks left; otherwise it
// walks right while the trace keeps falling. The left walk stops at bound,
// which lies right of a detected top. The loop guard is consulted only
// after a left walk.
func (e *EdgeSearch) refineRight(bound, right int) (int, bool) {
	s := e.smoothed
	n := len(s)

	k := right
	for step := 0; step < maxEdgeWalk; step++ {
		if k-1 < bound || s[k] <= s[k-1] {
			break
		}
		k--
	}

	if k != right {
		if e.guard.IsLooped(k) {
			return k, true
		}
		e.guard.Update(k)
		return k, false
	}

	for step := 0; step < maxEdgeWalk; step++ {
		if k+1 > n-1 || s[k] <= s[k+1] {
			break
		}
		k++
	}

	return k, false
}
