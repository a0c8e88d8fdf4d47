package smooth

import (
	"testing"

	"github.com/cwbudde/algo-chrom/internal/testutil"
)

func BenchmarkWeightedMovingAverage(b *testing.B) {
	series := testutil.DeterministicNoise(1, 1000, 4096)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = WeightedMovingAverage(series, 1)
	}
}

func BenchmarkSimpleMovingAverageWide(b *testing.B) {
	series := testutil.DeterministicNoise(1, 1000, 4096)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = SimpleMovingAverage(series, 50)
	}
}
