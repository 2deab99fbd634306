// Package telemetry records driver steps to CSV and summarises step timing.
package telemetry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

// Frame is one CSV row.
type Frame struct {
	Index      uint64  `csv:"frame"`
	Mode       string  `csv:"mode"`
	Particles  int     `csv:"particles"`
	StepMicros float64 `csv:"step_us"`
}

const (
	flushEvery = 120
	// window is how many recent step times feed the summary.
	window = 3600
)

// Trace appends frames to a CSV file. A nil *Trace records nothing, so callers
// need not check whether tracing is enabled.
type Trace struct {
	file          *os.File
	headerWritten bool
	pending       []Frame

	samples []float64
	next    int
	total   uint64
}

// OpenTrace creates the CSV at path. An empty path disables tracing and
// returns a nil Trace.
func OpenTrace(path string) (*Trace, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating trace directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace file: %w", err)
	}
	return &Trace{
		file:    f,
		pending: make([]Frame, 0, flushEvery),
		samples: make([]float64, 0, window),
	}, nil
}

// Record buffers a frame and flushes once enough have accumulated.
func (t *Trace) Record(f Frame) error {
	if t == nil {
		return nil
	}
	t.total++
	if len(t.samples) < window {
		t.samples = append(t.samples, f.StepMicros)
	} else {
		t.samples[t.next] = f.StepMicros
		t.next = (t.next + 1) % window
	}

	t.pending = append(t.pending, f)
	if len(t.pending) >= flushEvery {
		return t.Flush()
	}
	return nil
}

// Flush writes buffered frames.
func (t *Trace) Flush() error {
	if t == nil || len(t.pending) == 0 {
		return nil
	}
	var err error
	if !t.headerWritten {
		err = gocsv.Marshal(t.pending, t.file)
		t.headerWritten = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(t.pending, t.file)
	}
	t.pending = t.pending[:0]
	if err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// Summary describes step timing over the recent window.
type Summary struct {
	Frames     uint64
	Window     int
	MeanMicros float64
	StdMicros  float64
	P95Micros  float64
	MaxMicros  float64
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frames", s.Frames),
		slog.Int("window", s.Window),
		slog.Float64("mean_us", s.MeanMicros),
		slog.Float64("std_us", s.StdMicros),
		slog.Float64("p95_us", s.P95Micros),
		slog.Float64("max_us", s.MaxMicros),
	)
}

// Summary computes statistics over the recorded window.
func (t *Trace) Summary() Summary {
	if t == nil || len(t.samples) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(t.samples)
	slices.Sort(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	return Summary{
		Frames:     t.total,
		Window:     len(sorted),
		MeanMicros: mean,
		StdMicros:  std,
		P95Micros:  stat.Quantile(0.95, stat.Empirical, sorted, nil),
		MaxMicros:  sorted[len(sorted)-1],
	}
}

// Close flushes and closes the file.
func (t *Trace) Close() error {
	if t == nil {
		return nil
	}
	flushErr := t.Flush()
	if err := t.file.Close(); err != nil {
		return err
	}
	return flushErr
}

// Micros converts a duration to fractional microseconds.
func Micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}
