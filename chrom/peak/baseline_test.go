package peak

import (
	"testing"

	"github.com/cwbudde/algo-chrom/dsp/smooth"
	"github.com/cwbudde/algo-chrom/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestBinRangesIncludesPartialBin(t *testing.T) {
	values := []float64{0, 1, 0, 1, 0, 5, 5, 5, 5, 5, 2, 0}

	got := binRanges(values, 5)
	want := []float64{1, 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("binRanges mismatch (-want +got):\n%s", diff)
	}
}

func TestBaselineFallsBackToMinNoiseLevel(t *testing.T) {
	raw := testutil.DC(1000, 120)
	b := NewBaseline(raw, raw, smooth.Service{}, DefaultBaselineConfig())

	if b.NoiseLevel != 50 {
		t.Fatalf("NoiseLevel = %v, want 50", b.NoiseLevel)
	}

	if b.Threshold() != 150 {
		t.Fatalf("Threshold = %v, want 150", b.Threshold())
	}

	if b.IntensityMedian != 1000 || !b.IsHighBaseline {
		t.Fatalf("baseline = %+v, want elevated median 1000", b)
	}

	if !b.IsNoiseIfHighBaseline(1100) {
		t.Error("1100 is within one threshold of the median")
	}

	if b.IsNoiseIfHighBaseline(1200) {
		t.Error("1200 is above median + threshold")
	}

	if !b.IsNoise(149) || b.IsNoise(150) {
		t.Error("IsNoise must compare strictly against the threshold")
	}
}

func TestBaselineMedianOfQualifiedBins(t *testing.T) {
	raw := testutil.DC(0, 6)
	smoothed := []float64{0, 4, 0, 2, 0, 6}

	cfg := DefaultBaselineConfig()
	cfg.BinSize = 2
	cfg.MinNoiseBinCount = 3

	b := NewBaseline(raw, smoothed, smooth.Service{}, cfg)
	if b.QualifiedBins != 3 {
		t.Fatalf("QualifiedBins = %d, want 3", b.QualifiedBins)
	}

	if b.NoiseLevel != 4 {
		t.Fatalf("NoiseLevel = %v, want 4", b.NoiseLevel)
	}

	if b.IsHighBaseline || b.IsNoiseIfHighBaseline(0) {
		t.Fatal("zero background is not elevated")
	}
}
