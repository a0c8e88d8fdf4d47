package peak

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-chrom/dsp/smooth"
	"github.com/sirupsen/logrus"
)

// Errors returned by configuration validation.
var (
	ErrInvalidDatapoints = errors.New("peak: minimum datapoints must be positive")
	ErrInvalidAmplitude  = errors.New("peak: minimum amplitude must be >= 0")
	ErrInvalidFold       = errors.New("peak: noise fold criteria must be positive")
	ErrInvalidPeakWidth  = errors.New("peak: average peak width must be positive")
	ErrInvalidBaseline   = errors.New("peak: invalid baseline configuration")
	ErrNilSmoother       = errors.New("peak: smoother must not be nil")
)

// Smoother is the smoothing collaborator. Both methods must return a slice
// of the same length as series.
type Smoother interface {
	WeightedMovingAverage(series []float64, halfWindow int) []float64
	SimpleMovingAverage(series []float64, halfWindow int) []float64
}

// BaselineConfig tunes the global noise estimate.
type BaselineConfig struct {
	SmoothingLevel   int     // half window of the simple moving average, applied twice
	BinSize          int     // samples per noise bin
	MinNoiseBinCount int     // bins required before the median is trusted
	MinNoiseLevel    float64 // noise level used when too few bins qualify
	NoiseFactor      float64 // threshold = noise level * factor
}

// Config defines detector settings.
type Config struct {
	MinimumDatapoints  float64 // shortest accepted peak in samples
	MinimumAmplitude   float64 // smallest accepted apex height above an edge
	AmplitudeNoiseFold float64
	SlopeNoiseFold     float64
	AveragePeakWidth   int // flank length beyond which a range is curated
	SmoothingLevel     int // half window of the weighted moving average, applied twice
	Baseline           BaselineConfig

	Smoother Smoother
	// Logger receives a debug entry for every rejected candidate. Nil
	// disables logging.
	Logger logrus.FieldLogger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultBaselineConfig returns the baseline defaults.
func DefaultBaselineConfig() BaselineConfig {
	return BaselineConfig{
		SmoothingLevel:   10,
		BinSize:          50,
		MinNoiseBinCount: 10,
		MinNoiseLevel:    50,
		NoiseFactor:      3,
	}
}

// DefaultConfig returns sensible defaults for LC-MS extracted ion
// chromatograms.
func DefaultConfig() Config {
	return Config{
		MinimumDatapoints:  5,
		MinimumAmplitude:   1000,
		AmplitudeNoiseFold: 4,
		SlopeNoiseFold:     2,
		AveragePeakWidth:   20,
		SmoothingLevel:     1,
		Baseline:           DefaultBaselineConfig(),
		Smoother:           smooth.Service{},
	}
}

// WithMinimumDatapoints sets the shortest accepted peak. Values below 1.5
// enable the relaxed top and edge tests for window-truncated peaks.
func WithMinimumDatapoints(n float64) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MinimumDatapoints = n
		}
	}
}

// WithMinimumAmplitude sets the absolute amplitude floor.
func WithMinimumAmplitude(v float64) Option {
	return func(cfg *Config) {
		if v >= 0 {
			cfg.MinimumAmplitude = v
		}
	}
}

// WithAmplitudeNoiseFold sets the amplitude noise fold criterion.
func WithAmplitudeNoiseFold(fold float64) Option {
	return func(cfg *Config) {
		if fold > 0 {
			cfg.AmplitudeNoiseFold = fold
		}
	}
}

// WithSlopeNoiseFold sets the slope noise fold criterion.
func WithSlopeNoiseFold(fold float64) Option {
	return func(cfg *Config) {
		if fold > 0 {
			cfg.SlopeNoiseFold = fold
		}
	}
}

// WithAveragePeakWidth sets the expected peak width used for curation.
func WithAveragePeakWidth(width int) Option {
	return func(cfg *Config) {
		if width > 0 {
			cfg.AveragePeakWidth = width
		}
	}
}

// WithSmoothingLevel sets the weighted moving average half window.
func WithSmoothingLevel(level int) Option {
	return func(cfg *Config) {
		if level >= 0 {
			cfg.SmoothingLevel = level
		}
	}
}

// WithNoiseBinSize sets the number of samples per baseline noise bin.
func WithNoiseBinSize(size int) Option {
	return func(cfg *Config) {
		if size > 1 {
			cfg.Baseline.BinSize = size
		}
	}
}

// WithMinNoiseBinCount sets how many bins must qualify before their median
// is used as the noise level.
func WithMinNoiseBinCount(count int) Option {
	return func(cfg *Config) {
		if count > 0 {
			cfg.Baseline.MinNoiseBinCount = count
		}
	}
}

// WithMinNoiseLevel sets the fallback noise level.
func WithMinNoiseLevel(level float64) Option {
	return func(cfg *Config) {
		if level >= 0 {
			cfg.Baseline.MinNoiseLevel = level
		}
	}
}

// WithNoiseFactor sets the multiplier turning the noise level into the
// baseline threshold.
func WithNoiseFactor(factor float64) Option {
	return func(cfg *Config) {
		if factor > 0 {
			cfg.Baseline.NoiseFactor = factor
		}
	}
}

// WithSmoother replaces the smoothing collaborator.
func WithSmoother(s Smoother) Option {
	return func(cfg *Config) {
		if s != nil {
			cfg.Smoother = s
		}
	}
}

// WithLogger enables debug logging of rejected candidates.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate checks a Config built by hand or decoded from a file.
func (c Config) Validate() error {
	if !(c.MinimumDatapoints > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDatapoints, c.MinimumDatapoints)
	}

	if !(c.MinimumAmplitude >= 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmplitude, c.MinimumAmplitude)
	}

	if !(c.AmplitudeNoiseFold > 0) || !(c.SlopeNoiseFold > 0) {
		return fmt.Errorf("%w: amplitude %v, slope %v", ErrInvalidFold, c.AmplitudeNoiseFold, c.SlopeNoiseFold)
	}

	if c.AveragePeakWidth <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPeakWidth, c.AveragePeakWidth)
	}

	if c.SmoothingLevel < 0 {
		return fmt.Errorf("peak: smoothing level must be >= 0: %d", c.SmoothingLevel)
	}

	if err := c.Baseline.validate(); err != nil {
		return err
	}

	if c.Smoother == nil {
		return ErrNilSmoother
	}

	return nil
}

func (b BaselineConfig) validate() error {
	switch {
	case b.SmoothingLevel < 0:
		return fmt.Errorf("%w: smoothing level %d", ErrInvalidBaseline, b.SmoothingLevel)
	case b.BinSize < 2:
		return fmt.Errorf("%w: bin size %d", ErrInvalidBaseline, b.BinSize)
	case b.MinNoiseBinCount < 1:
		return fmt.Errorf("%w: min noise bin count %d", ErrInvalidBaseline, b.MinNoiseBinCount)
	case !(b.MinNoiseLevel >= 0):
		return fmt.Errorf("%w: min noise level %v", ErrInvalidBaseline, b.MinNoiseLevel)
	case !(b.NoiseFactor > 0):
		return fmt.Errorf("%w: noise factor %v", ErrInvalidBaseline, b.NoiseFactor)
	}
	return nil
}
