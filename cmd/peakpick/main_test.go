package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-chrom/chrom"
	"github.com/cwbudde/algo-chrom/chrom/peak"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func gaussianCSV(center float64) string {
	var b strings.Builder
	b.WriteString("id,position,mass,intensity\n")
	for i := 0; i < 101; i++ {
		d := float64(i) - center
		fmt.Fprintf(&b, "%d,%v,%v,%v\n", 1000+i, float64(i)*0.5, 301.1, 10+1000*math.Exp(-d*d/18))
	}
	return b.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestReadTrace(t *testing.T) {
	got, err := readTrace(strings.NewReader("# comment\nid,position,mass,intensity\n1, 0.5, 100.1, 20\n2,1.0,100.1,35.5\n"))
	if err != nil {
		t.Fatalf("readTrace: %v", err)
	}

	want := chrom.Trace{
		{ID: 1, Position: 0.5, Mass: 100.1, Intensity: 20},
		{ID: 2, Position: 1.0, Mass: 100.1, Intensity: 35.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTraceErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "empty", input: "id,position,mass,intensity\n", want: errEmptyTrace},
		{name: "unordered", input: "1,2,0,5\n2,1,0,5\n", want: chrom.ErrUnorderedPositions},
		{name: "nan", input: "1,0,0,NaN\n", want: chrom.ErrNonFiniteValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := readTrace(strings.NewReader(tt.input)); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := readTrace(strings.NewReader("1,0,0,5\n2,x,0,5\n")); err == nil || !strings.Contains(err.Error(), "line 2: position") {
		t.Fatalf("err = %v, want a position parse error on line 2", err)
	}

	if _, err := readTrace(strings.NewReader("1,0,0\n")); err == nil {
		t.Fatal("short row must fail")
	}
}

func TestParseConfig(t *testing.T) {
	cfg := peak.DefaultConfig()
	data := []byte(`
minimum_datapoints: 3
minimum_amplitude: 50
average_peak_width: 12
baseline:
  bin_size: 25
  noise_factor: 4.5
`)

	if err := parseConfig(data, &cfg); err != nil {
		t.Fatalf("parseConfig: %v", err)
	}

	if cfg.MinimumDatapoints != 3 || cfg.MinimumAmplitude != 50 || cfg.AveragePeakWidth != 12 {
		t.Fatalf("top-level fields not applied: %+v", cfg)
	}

	if cfg.Baseline.BinSize != 25 || cfg.Baseline.NoiseFactor != 4.5 {
		t.Fatalf("baseline fields not applied: %+v", cfg.Baseline)
	}

	def := peak.DefaultConfig()
	if cfg.SlopeNoiseFold != def.SlopeNoiseFold || cfg.Baseline.MinNoiseBinCount != def.Baseline.MinNoiseBinCount {
		t.Fatal("absent keys must keep their defaults")
	}
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	cfg := peak.DefaultConfig()
	if err := parseConfig([]byte("minimum_widht: 3\n"), &cfg); err == nil {
		t.Fatal("unknown key must fail")
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "minimum_datapoints: -2\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if _, err := newDetector(cfg, quietLogger()); !errors.Is(err, peak.ErrInvalidDatapoints) {
		t.Fatalf("err = %v, want ErrInvalidDatapoints", err)
	}
}

func TestProcessFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.csv", gaussianCSV(30)),
		writeFile(t, dir, "b.csv", gaussianCSV(50)),
		writeFile(t, dir, "c.csv", gaussianCSV(70)),
	}

	det := peak.NewDetector(peak.WithMinimumDatapoints(3), peak.WithMinimumAmplitude(50))

	results, err := processFiles(context.Background(), det, paths, 2, quietLogger())
	if err != nil {
		t.Fatalf("processFiles: %v", err)
	}

	for i, res := range results {
		if res.Path != paths[i] || res.Samples != 101 {
			t.Fatalf("result %d = %s/%d, want %s/101", i, res.Path, res.Samples, paths[i])
		}

		if len(res.Peaks) != 1 {
			t.Fatalf("%s: got %d peaks, want 1", res.Path, len(res.Peaks))
		}
	}

	if top := results[2].Peaks[0]; top.TopIndex != 70 || top.TopID != 1070 || top.TopPosition != 35 {
		t.Fatalf("top = %d/%d/%v, want 70/1070/35", top.TopIndex, top.TopID, top.TopPosition)
	}

	sum := results[2].Summary
	if sum.Length != 101 || sum.MaxPos != 70 || sum.MinPos != 0 {
		t.Fatalf("summary = %+v, want length 101, max at 70, min at 0", sum)
	}

	if math.Abs(sum.Max-1010) > 1e-9 || results[2].MaxPosition != 35 {
		t.Fatalf("max = %v at %v, want 1010 at 35", sum.Max, results[2].MaxPosition)
	}
}

func TestProcessFilesFailsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "ok.csv", gaussianCSV(50)),
		filepath.Join(dir, "missing.csv"),
	}

	_, err := processFiles(context.Background(), peak.NewDetector(), paths, 4, quietLogger())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestRootCommandJSON(t *testing.T) {
	dir := t.TempDir()
	trace := writeFile(t, dir, "trace.csv", gaussianCSV(50))
	cfg := writeFile(t, dir, "params.yaml", "minimum_datapoints: 3\nminimum_amplitude: 50\n")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", cfg, "--format", "json", "--log-level", "error", trace})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	var results []fileResult
	if err := json.Unmarshal(out.Bytes(), &results); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}

	if len(results) != 1 || len(results[0].Peaks) != 1 {
		t.Fatalf("results = %+v, want one file with one peak", results)
	}

	if !strings.Contains(out.String(), `"high-baseline"`) {
		t.Fatalf("rejection counters are not labeled:\n%s", out.String())
	}

	if results[0].Summary.MaxPos != 50 || results[0].Stats.Candidates < 1 {
		t.Fatalf("summary/stats not decoded: %+v", results[0])
	}
}

func TestRootCommandTable(t *testing.T) {
	trace := writeFile(t, t.TempDir(), "trace.csv", gaussianCSV(50))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--min-datapoints", "3", "--min-amplitude", "50", "--log-level", "error", trace})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header and one peak:\n%s", len(lines), out.String())
	}

	if !strings.Contains(lines[0], "purity") || !strings.Contains(lines[1], "trace.csv") {
		t.Fatalf("unexpected table:\n%s", out.String())
	}
}

func TestRootCommandRejectsFormat(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--format", "xml", "x.csv"})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("unknown format must fail")
	}
}
