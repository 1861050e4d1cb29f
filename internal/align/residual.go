package align

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/skein-aero/tracksync/internal/timeseries"
)

// residualSpatial computes the mean spatial discrepancy left after applying
// the found time offset: target timestamps are shifted by offsetS, the
// target's ENU axes re-interpolated onto the reference's own grid, and the
// per-axis mean differences combined as sqrt(ΔE² + ΔN² + ΔU²). Purely a
// validation metric; it never feeds back into the offset. ok is false when
// the shifted spans no longer overlap.
func residualSpatial(tRef []float64, refAxes [][]float64, tTgt []float64, tgtAxes [][]float64, offsetS float64) (float64, bool) {
	tRef, refAxes = timeseries.DropNaNRows(tRef, refAxes...)
	tTgt, tgtAxes = timeseries.DropNaNRows(tTgt, tgtAxes...)
	if len(tRef) == 0 || len(tTgt) < 2 {
		return 0, false
	}

	shifted := make([]float64, len(tTgt))
	for i, ts := range tTgt {
		shifted[i] = ts + offsetS
	}

	// Reference samples inside the shifted target span.
	lo, hi := shifted[0], shifted[len(shifted)-1]
	var sumSq float64
	for k := range refAxes {
		diffs := make([]float64, 0, len(tRef))
		for i, tr := range tRef {
			if tr < lo || tr > hi {
				continue
			}
			diffs = append(diffs, refAxes[k][i]-timeseries.InterpAt(shifted, tgtAxes[k], tr))
		}
		if len(diffs) == 0 {
			return 0, false
		}
		m := stat.Mean(diffs, nil)
		sumSq += m * m
	}
	return math.Sqrt(sumSq), true
}
