package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-chrom/chrom/peak"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// fileConfig mirrors peak.Config in a YAML file. Absent keys keep the
// detector defaults.
type fileConfig struct {
	MinimumDatapoints  *float64 `yaml:"minimum_datapoints"`
	MinimumAmplitude   *float64 `yaml:"minimum_amplitude"`
	AmplitudeNoiseFold *float64 `yaml:"amplitude_noise_fold"`
	SlopeNoiseFold     *float64 `yaml:"slope_noise_fold"`
	AveragePeakWidth   *int     `yaml:"average_peak_width"`
	SmoothingLevel     *int     `yaml:"smoothing_level"`

	Baseline struct {
		SmoothingLevel   *int     `yaml:"smoothing_level"`
		BinSize          *int     `yaml:"bin_size"`
		MinNoiseBinCount *int     `yaml:"min_noise_bin_count"`
		MinNoiseLevel    *float64 `yaml:"min_noise_level"`
		NoiseFactor      *float64 `yaml:"noise_factor"`
	} `yaml:"baseline"`
}

// loadConfig returns the default detector config, overlaid with the YAML
// file at path when path is not empty.
func loadConfig(path string) (peak.Config, error) {
	cfg := peak.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := parseConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func parseConfig(data []byte, cfg *peak.Config) error {
	var fc fileConfig
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return err
	}

	setFloat(&cfg.MinimumDatapoints, fc.MinimumDatapoints)
	setFloat(&cfg.MinimumAmplitude, fc.MinimumAmplitude)
	setFloat(&cfg.AmplitudeNoiseFold, fc.AmplitudeNoiseFold)
	setFloat(&cfg.SlopeNoiseFold, fc.SlopeNoiseFold)
	setInt(&cfg.AveragePeakWidth, fc.AveragePeakWidth)
	setInt(&cfg.SmoothingLevel, fc.SmoothingLevel)

	b := &cfg.Baseline
	setInt(&b.SmoothingLevel, fc.Baseline.SmoothingLevel)
	setInt(&b.BinSize, fc.Baseline.BinSize)
	setInt(&b.MinNoiseBinCount, fc.Baseline.MinNoiseBinCount)
	setFloat(&b.MinNoiseLevel, fc.Baseline.MinNoiseLevel)
	setFloat(&b.NoiseFactor, fc.Baseline.NoiseFactor)

	return nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// newDetector validates cfg and attaches logger for debug output.
func newDetector(cfg peak.Config, logger *logrus.Logger) (*peak.Detector, error) {
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		cfg.Logger = logger
	}
	return peak.NewDetectorFromConfig(cfg)
}
