package stats

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a finished sample, such as the depths reached over a
// self-play run.
type Summary struct {
	N      int
	Mean   float64
	Stdev  float64
	Min    float64
	Median float64
	P90    float64
	Max    float64
}

// Summarize computes a Summary of data. data is not modified.
func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}
	return Summary{
		N:      len(sorted),
		Mean:   mean,
		Stdev:  std,
		Min:    floats.Min(sorted),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Max:    floats.Max(sorted),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.2f stdev=%.2f min=%.2f median=%.2f p90=%.2f max=%.2f",
		s.N, s.Mean, s.Stdev, s.Min, s.Median, s.P90, s.Max)
}

// WinRate returns the fraction of points scored out of games (a draw counts
// as half a point) and the half-width of its confidence interval, in percent.
func WinRate(points float64, games int, confidence float64) (float64, float64) {
	if games == 0 {
		return 0, 0
	}
	p := points / float64(games)
	stderr := 0.0
	if games > 1 {
		stderr = (p * (1 - p) / float64(games-1))
	}
	return 100 * p, 100 * ZVal(confidence) * math.Sqrt(stderr)
}

// FprintHistogram draws data as a text histogram with the given number of
// bins, bars scaled to width columns.
func FprintHistogram(w io.Writer, data []float64, bins, width int) error {
	if len(data) == 0 {
		_, err := io.WriteString(w, "(no data)\n")
		return err
	}
	if floats.Min(data) == floats.Max(data) {
		_, err := fmt.Fprintf(w, "all %d values are %.2f\n", len(data), data[0])
		return err
	}
	h := histogram.Hist(bins, data)
	return histogram.Fprint(w, h, histogram.Linear(width))
}
