package peak

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-chrom/chrom"
	"github.com/sirupsen/logrus"
)

// minScanMargin is the smallest number of samples skipped at each end of
// the trace.
const minScanMargin = 5

// Detector finds peaks in chromatograms. It holds configuration only and
// is safe for concurrent use.
type Detector struct {
	cfg Config
}

// NewDetector returns a Detector built from DefaultConfig and opts.
func NewDetector(opts ...Option) *Detector {
	return &Detector{cfg: ApplyOptions(opts...)}
}

// NewDetectorFromConfig validates cfg and returns a Detector using it.
func NewDetectorFromConfig(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("peak: new detector: %w", err)
	}
	return &Detector{cfg: cfg}, nil
}

// Config returns a copy of the detector configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// Detect returns the accepted peaks of trace in detection order.
func (d *Detector) Detect(trace chrom.Trace) []Record {
	records, _ := d.DetectWithStats(trace)
	return records
}

// DetectWithStats is Detect plus counters describing the run. Traces
// shorter than the minimum datapoints yield no records and zero Stats.
func (d *Detector) DetectWithStats(trace chrom.Trace) ([]Record, Stats) {
	var st Stats

	n := trace.Len()
	if n == 0 || float64(n) < d.cfg.MinimumDatapoints {
		return nil, st
	}

	raw := trace.Intensities()
	sm := d.cfg.Smoother
	smoothed := sm.WeightedMovingAverage(sm.WeightedMovingAverage(raw, d.cfg.SmoothingLevel), d.cfg.SmoothingLevel)

	profile := NewDerivativeProfile(smoothed)
	st.Noise = NewNoiseModel(smoothed, profile, Calibrate(smoothed, profile))
	st.Baseline = NewBaseline(raw, smoothed, sm, d.cfg.Baseline)

	search := NewEdgeSearch(raw, smoothed, profile, st.Noise, d.cfg)
	scorer := NewShapeScorer(trace, st.Baseline.NoiseLevel)

	var records []Record

	margin := int(math.Max(d.cfg.MinimumDatapoints, minScanMargin))
	floor := 0

	for i := margin; i < n-margin; {
		step := search.Step(i, floor)
		if step.Terminate {
			st.Terminated = true
			d.debug(i, "loop guard ended the scan")
			break
		}

		i = step.Next
		if !step.Found {
			continue
		}

		cand := step.Candidate
		floor = cand.Right
		st.Candidates++

		rec, reason, ok := d.evaluate(raw, smoothed, cand, st, scorer)
		if !ok {
			st.Rejected[reason]++
			d.reject(cand, reason)
			continue
		}

		rec.PeakID = len(records)
		records = append(records, rec)
	}

	rankByAmplitude(records)
	st.Accepted = len(records)

	return records, st
}

// evaluate runs the gates in order on one candidate.
func (d *Detector) evaluate(raw, smoothed []float64, cand CandidatePeak, st Stats, scorer *ShapeScorer) (Record, Rejection, bool) {
	if float64(cand.Width()) < d.cfg.MinimumDatapoints {
		return Record{}, RejectWidth, false
	}

	top := argmax(raw, cand.Left, cand.Right)
	c := Curate(raw, smoothed, cand, top, d.cfg.AveragePeakWidth)

	rawTop := raw[c.Top]
	leftH := rawTop - raw[c.Left]
	rightH := rawTop - raw[c.Right]
	maxH := math.Max(leftH, rightH)
	minH := math.Min(leftH, rightH)

	switch {
	case st.Baseline.IsNoise(maxH):
		return Record{}, RejectBaselineNoise, false
	case maxH < d.cfg.MinimumAmplitude:
		return Record{}, RejectAmplitude, false
	case st.Noise.IsAmplitudeNoise(minH, d.cfg.AmplitudeNoiseFold):
		return Record{}, RejectAmplitudeNoise, false
	case st.Baseline.IsNoiseIfHighBaseline(rawTop):
		return Record{}, RejectHighBaseline, false
	}

	rec, ok := scorer.Score(c)
	if !ok {
		return Record{}, RejectShape, false
	}
	return rec, 0, true
}

func (d *Detector) reject(c CandidatePeak, reason Rejection) {
	if d.cfg.Logger == nil {
		return
	}
	d.cfg.Logger.WithFields(logrus.Fields{
		"left":   c.Left,
		"right":  c.Right,
		"reason": reason.String(),
	}).Debug("candidate rejected")
}

func (d *Detector) debug(index int, msg string) {
	if d.cfg.Logger == nil {
		return
	}
	d.cfg.Logger.WithField("index", index).Debug(msg)
}

// rankByAmplitude assigns AmplitudeOrderValue and AmplitudeScoreValue.
// Records keep their detection order. The score is top/maxTop, which lies
// in (0, 1] for positive intensities. When the largest top is not positive
// the score is maxTop/top instead, so the least negative top still scores 1
// and a zero maximum scores 1 against 0 for the negative tops.
func rankByAmplitude(records []Record) {
	if len(records) == 0 {
		return
	}

	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(records[b].TopIntensity, records[a].TopIntensity)
	})

	maxTop := float64(records[order[0]].TopIntensity)
	for rank, idx := range order {
		r := &records[idx]
		r.AmplitudeOrderValue = rank + 1
		r.AmplitudeScoreValue = float32(amplitudeScore(float64(r.TopIntensity), maxTop))
	}
}

func amplitudeScore(top, maxTop float64) float64 {
	switch {
	case top == maxTop:
		return 1
	case maxTop > 0:
		return top / maxTop
	case top < 0:
		return maxTop / top
	default:
		return 0
	}
}
