package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))

	}
}

func TestStatisticExtremes(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{4, -2, 9, 3} {
		s.Push(v)
	}
	is.Equal(s.Min(), -2.0)
	is.Equal(s.Max(), 9.0)
	is.Equal(s.Last(), 3.0)
	is.Equal(s.Iterations(), 4)
}

func TestSummarize(t *testing.T) {
	is := is.New(t)
	data := []float64{10, 3, 7, 1, 2, 9, 4, 6, 8, 5}
	sum := Summarize(data)
	is.Equal(sum.N, 10)
	is.True(FuzzyEqual(sum.Mean, 5.5))
	is.True(FuzzyEqual(sum.Stdev, 3.0276503540974917))
	is.Equal(sum.Min, 1.0)
	is.Equal(sum.Max, 10.0)
	is.Equal(sum.Median, 5.0)
	is.Equal(sum.P90, 9.0)
	// input order is left alone
	is.Equal(data[0], 10.0)

	is.Equal(Summarize(nil), Summary{})
	one := Summarize([]float64{7})
	is.Equal(one.Stdev, 0.0)
	is.Equal(one.Median, 7.0)
}

func TestWinRate(t *testing.T) {
	is := is.New(t)
	pct, ci := WinRate(5, 10, 95)
	is.True(FuzzyEqual(pct, 50))
	// 1.96 * sqrt(0.25/9)
	is.True(math.Abs(ci-32.66) < 0.01)

	pct, ci = WinRate(0, 0, 95)
	is.Equal(pct, 0.0)
	is.Equal(ci, 0.0)
}

func TestFprintHistogram(t *testing.T) {
	is := is.New(t)
	var sb strings.Builder
	is.NoErr(FprintHistogram(&sb, []float64{1, 2, 2, 3, 3, 3, 4, 4, 5}, 4, 20))
	is.True(sb.Len() > 0)

	sb.Reset()
	is.NoErr(FprintHistogram(&sb, []float64{6, 6, 6}, 4, 20))
	is.Equal(sb.String(), "all 3 values are 6.00\n")

	sb.Reset()
	is.NoErr(FprintHistogram(&sb, nil, 4, 20))
	is.Equal(sb.String(), "(no data)\n")
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(math.Abs(ZVal(95)-1.959964) < 1e-5)
	is.True(math.Abs(ZVal(99)-2.575829) < 1e-5)
}
