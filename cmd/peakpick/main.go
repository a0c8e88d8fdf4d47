// peakpick detects chromatographic peaks in CSV traces.
//
// Each input file holds one chromatogram with the columns
// id,position,mass,intensity; a header row is optional. Files are
// processed concurrently and reported in argument order.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

type options struct {
	configPath string
	format     string
	jobs       int
	logLevel   string
	logJSON    bool

	minDatapoints float64
	minAmplitude  float64
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "peakpick [flags] <trace.csv>...",
		Short: "Detect peaks in chromatogram traces",
		Long: `peakpick reads one chromatogram per CSV file (id,position,mass,intensity),
detects peaks and prints one row per peak.

Detection parameters come from the defaults, optionally overridden by a
YAML file (--config) and then by the individual flags.`,
		Version:      version,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	f := root.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML file with detection parameters")
	f.StringVarP(&opts.format, "format", "f", formatTable, "output format: table or json")
	f.IntVarP(&opts.jobs, "jobs", "j", 4, "number of files processed concurrently")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level (debug logs every rejected candidate)")
	f.BoolVar(&opts.logJSON, "log-json", false, "log as JSON")
	f.Float64Var(&opts.minDatapoints, "min-datapoints", 0, "override the minimum peak width in samples")
	f.Float64Var(&opts.minAmplitude, "min-amplitude", -1, "override the minimum peak amplitude")

	return root
}

func run(cmd *cobra.Command, paths []string, opts options) error {
	if opts.format != formatTable && opts.format != formatJSON {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	logger, err := newLogger(opts.logLevel, opts.logJSON)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("min-datapoints") {
		cfg.MinimumDatapoints = opts.minDatapoints
	}
	if cmd.Flags().Changed("min-amplitude") {
		cfg.MinimumAmplitude = opts.minAmplitude
	}

	det, err := newDetector(cfg, logger)
	if err != nil {
		return err
	}

	results, err := processFiles(cmd.Context(), det, paths, opts.jobs, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == formatJSON {
		return writeJSON(out, results)
	}
	return writeTable(out, results)
}

func newLogger(level string, asJSON bool) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(lvl)

	if asJSON {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger, nil
}
