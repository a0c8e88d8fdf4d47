package peak

// Record is one detected peak. Scores are computed in float64 and stored
// as float32.
type Record struct {
	PeakID int

	LeftIndex  int
	TopIndex   int
	RightIndex int

	// Sample IDs of the edges and the top.
	LeftID  int
	TopID   int
	RightID int

	LeftPosition  float64
	TopPosition   float64
	RightPosition float64
	TopMass       float64

	LeftIntensity  float32
	TopIntensity   float32
	RightIntensity float32

	HalfWidth               float32 // half width at half maximum, in position units
	ShapenessValue          float32
	SymmetryValue           float32
	BasePeakValue           float32
	IdealSlopeValue         float32
	GaussianSimilarityValue float32
	PeakPureValue           float32

	AreaAboveZero     float32
	AreaAboveBaseline float32
	EstimatedNoise    float32
	SignalToNoise     float32

	AmplitudeOrderValue int     // 1 for the most intense peak
	AmplitudeScoreValue float32 // top intensity relative to the most intense peak
}

// Width returns the number of samples spanned by the peak.
func (r Record) Width() int {
	return r.RightIndex - r.LeftIndex + 1
}
