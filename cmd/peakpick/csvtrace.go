package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-chrom/chrom"
)

var errEmptyTrace = errors.New("trace has no samples")

// readTrace parses id,position,mass,intensity rows. A first row whose id
// column is not an integer is treated as a header.
func readTrace(r io.Reader) (chrom.Trace, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var trace chrom.Trace

	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if line == 1 && isHeader(rec) {
			continue
		}

		s, err := parseSample(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		trace = append(trace, s)
	}

	if len(trace) == 0 {
		return nil, errEmptyTrace
	}

	if err := trace.Validate(); err != nil {
		return nil, err
	}

	return trace, nil
}

func isHeader(rec []string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	return err != nil
}

func parseSample(rec []string) (chrom.Sample, error) {
	var (
		s   chrom.Sample
		err error
	)

	if s.ID, err = strconv.Atoi(strings.TrimSpace(rec[0])); err != nil {
		return s, fmt.Errorf("id: %w", err)
	}

	fields := []*float64{&s.Position, &s.Mass, &s.Intensity}
	names := []string{"position", "mass", "intensity"}
	for i, dst := range fields {
		if *dst, err = strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64); err != nil {
			return s, fmt.Errorf("%s: %w", names[i], err)
		}
	}

	return s, nil
}
