// Package timeseries provides validation, NaN filtering, and common-grid
// resampling for irregularly sampled telemetry series. Alignment works on
// pairs of series interpolated onto one uniformly spaced time base covering
// the intersection of their spans.
package timeseries

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput marks precondition violations that indicate an upstream
// bug (non-increasing timestamps, mismatched lengths, an all-NaN track)
// rather than a natural data-quality limitation. Callers classify with
// errors.Is; these surface immediately instead of degrading into a status.
var ErrInvalidInput = errors.New("invalid input")

// ErrInsufficientOverlap is returned when the two series' time spans
// intersect in fewer grid samples than the configured minimum. This is an
// expected outcome for non-overlapping tracks, not a bug.
var ErrInsufficientOverlap = errors.New("insufficient overlap")

// Validate checks the core input contract for one series: timestamps
// strictly increasing, one value per timestamp for every axis, at least two
// samples, and at least one row free of NaN. Violations wrap ErrInvalidInput.
func Validate(t []float64, axes ...[]float64) error {
	if len(t) < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidInput, len(t))
	}
	for i, x := range axes {
		if len(x) != len(t) {
			return fmt.Errorf("%w: axis %d has %d values for %d timestamps", ErrInvalidInput, i, len(x), len(t))
		}
	}
	for i := 1; i < len(t); i++ {
		if !(t[i] > t[i-1]) {
			return fmt.Errorf("%w: timestamps not strictly increasing at index %d", ErrInvalidInput, i)
		}
	}
	if countValidRows(t, axes) == 0 {
		return fmt.Errorf("%w: no sample row is free of NaN", ErrInvalidInput)
	}
	return nil
}

func countValidRows(t []float64, axes [][]float64) int {
	n := 0
rows:
	for i := range t {
		if math.IsNaN(t[i]) {
			continue
		}
		for _, x := range axes {
			if math.IsNaN(x[i]) {
				continue rows
			}
		}
		n++
	}
	return n
}

// DropNaNRows returns copies of t and axes with every row removed where the
// timestamp or any axis value is NaN. Upstream NaN (e.g. missing geodetic
// fixes passed through the projector) is excluded here so interpolation only
// ever sees real numbers.
func DropNaNRows(t []float64, axes ...[]float64) ([]float64, [][]float64) {
	keep := make([]int, 0, len(t))
rows:
	for i := range t {
		if math.IsNaN(t[i]) {
			continue
		}
		for _, x := range axes {
			if math.IsNaN(x[i]) {
				continue rows
			}
		}
		keep = append(keep, i)
	}

	tt := make([]float64, len(keep))
	out := make([][]float64, len(axes))
	for a := range axes {
		out[a] = make([]float64, len(keep))
	}
	for j, i := range keep {
		tt[j] = t[i]
		for a, x := range axes {
			out[a][j] = x[i]
		}
	}
	return tt, out
}
