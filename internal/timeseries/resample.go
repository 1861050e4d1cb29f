package timeseries

import (
	"fmt"
	"sort"
)

// Grid is a uniformly spaced time base covering the intersection of two
// series' spans.
type Grid struct {
	Start float64
	Step  float64
	N     int
}

// Times materialises the grid timestamps.
func (g Grid) Times() []float64 {
	out := make([]float64, g.N)
	for i := range out {
		out[i] = g.Start + float64(i)*g.Step
	}
	return out
}

// CommonGrid computes the shared grid for two series at rateHz. The grid
// spans [max(ta0, tb0), min(taN, tbN)] stepped at 1/rateHz. N is zero when
// the spans do not intersect.
func CommonGrid(ta, tb []float64, rateHz float64) Grid {
	start := max(ta[0], tb[0])
	end := min(ta[len(ta)-1], tb[len(tb)-1])
	step := 1.0 / rateHz

	if end < start {
		return Grid{Start: start, Step: step, N: 0}
	}
	// Points start + k*step for k = 0..floor((end-start)/step).
	n := int((end-start)/step) + 1
	return Grid{Start: start, Step: step, N: n}
}

// Interp linearly interpolates the series (t, x) onto the grid. Grid points
// are always inside [t[0], t[last]] by construction; an exact hit on a
// sample timestamp returns that sample directly. No extrapolation happens:
// a grid point outside the span (only possible through floating-point edge
// noise) clamps to the nearest end sample.
func Interp(t, x []float64, g Grid) []float64 {
	out := make([]float64, g.N)
	for i := 0; i < g.N; i++ {
		tc := g.Start + float64(i)*g.Step
		out[i] = InterpAt(t, x, tc)
	}
	return out
}

// InterpAt evaluates the series (t, x) at a single time by linear
// interpolation, clamping to the end samples outside the span.
func InterpAt(t, x []float64, tc float64) float64 {
	n := len(t)
	if tc <= t[0] {
		return x[0]
	}
	if tc >= t[n-1] {
		return x[n-1]
	}
	// First index with t[j] >= tc; bracketing pair is (j-1, j).
	j := sort.SearchFloat64s(t, tc)
	if t[j] == tc {
		return x[j]
	}
	frac := (tc - t[j-1]) / (t[j] - t[j-1])
	return x[j-1] + frac*(x[j]-x[j-1])
}

// Resample interpolates two multi-axis series onto one shared grid at
// rateHz. NaN rows are dropped from each input before gridding. It returns
// the grid plus per-axis interpolated values for both series, or
// ErrInsufficientOverlap when fewer than minSamples grid points fit inside
// the common span.
func Resample(ta []float64, xa [][]float64, tb []float64, xb [][]float64, rateHz float64, minSamples int) (Grid, [][]float64, [][]float64, error) {
	ta, xa = DropNaNRows(ta, xa...)
	tb, xb = DropNaNRows(tb, xb...)

	if len(ta) < 2 || len(tb) < 2 {
		return Grid{}, nil, nil, fmt.Errorf("%w: fewer than 2 valid samples after NaN filtering", ErrInsufficientOverlap)
	}

	g := CommonGrid(ta, tb, rateHz)
	if g.N < minSamples {
		return Grid{}, nil, nil, fmt.Errorf("%w: %d samples at %.1f Hz, need %d", ErrInsufficientOverlap, g.N, rateHz, minSamples)
	}

	ai := make([][]float64, len(xa))
	for k := range xa {
		ai[k] = Interp(ta, xa[k], g)
	}
	bi := make([][]float64, len(xb))
	for k := range xb {
		bi[k] = Interp(tb, xb[k], g)
	}
	return g, ai, bi, nil
}
