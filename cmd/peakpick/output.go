package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func writeTable(w io.Writer, results []fileResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "file\tid\tleft\ttop\tright\tintensity\thwhm\tgauss\tsymmetry\tpurity\tS/N\trank\t")
	for _, res := range results {
		for _, p := range res.Peaks {
			fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.3f\t%.1f\t%.3f\t%.3f\t%.3f\t%.3f\t%.1f\t%d\t\n",
				res.Path, p.PeakID,
				p.LeftPosition, p.TopPosition, p.RightPosition,
				p.TopIntensity, p.HalfWidth,
				p.GaussianSimilarityValue, p.SymmetryValue, p.PeakPureValue,
				p.SignalToNoise, p.AmplitudeOrderValue)
		}
	}

	return tw.Flush()
}

func writeJSON(w io.Writer, results []fileResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
