package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cwbudde/algo-chrom/chrom/peak"
	"github.com/cwbudde/algo-chrom/stats/robust"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// fileResult is the detection outcome for one input file. MaxPosition is
// the position of the most intense sample.
type fileResult struct {
	Path        string         `json:"path"`
	Samples     int            `json:"samples"`
	Summary     robust.Summary `json:"summary"`
	MaxPosition float64        `json:"max_position"`
	Peaks       []peak.Record  `json:"peaks"`
	Stats       peak.Stats     `json:"stats"`
}

// processFiles runs det over every path with at most jobs files in flight.
// Results keep the order of paths. The first failing file cancels the
// remaining work.
func processFiles(ctx context.Context, det *peak.Detector, paths []string, jobs int, logger logrus.FieldLogger) ([]fileResult, error) {
	if jobs < 1 {
		jobs = 1
	}

	results := make([]fileResult, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)

	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := processFile(det, path)
			if err != nil {
				return err
			}

			logger.WithFields(logrus.Fields{
				"file":       path,
				"samples":    res.Samples,
				"max":        res.Summary.Max,
				"max_pos":    res.MaxPosition,
				"median":     res.Summary.Median,
				"peaks":      len(res.Peaks),
				"candidates": res.Stats.Candidates,
				"terminated": res.Stats.Terminated,
			}).Info("trace processed")

			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func processFile(det *peak.Detector, path string) (fileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileResult{}, err
	}
	defer f.Close()

	trace, err := readTrace(f)
	if err != nil {
		return fileResult{}, fmt.Errorf("%s: %w", path, err)
	}

	records, st := det.DetectWithStats(trace)

	res := fileResult{
		Path:    path,
		Samples: trace.Len(),
		Summary: robust.Summarize(trace.Intensities()),
		Peaks:   records,
		Stats:   st,
	}
	if res.Summary.MaxPos >= 0 {
		res.MaxPosition = trace[res.Summary.MaxPos].Position
	}

	return res, nil
}
