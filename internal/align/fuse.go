package align

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// fuse combines per-axis offset estimates into one scalar time offset using
// correlation-strength weights:
//
//	offset  = Σ(|score_i|·τ_i) / Σ|score_i|
//	quality = mean(|score_i|)
//
// over the axes that converged. ok is false when no axis did.
func fuse(axes map[string]AxisResult) (offset, quality float64, ok bool) {
	taus := make([]float64, 0, len(axes))
	weights := make([]float64, 0, len(axes))
	for _, a := range axes {
		if a.Status != StatusOK {
			continue
		}
		taus = append(taus, a.OffsetSeconds)
		weights = append(weights, math.Abs(a.Score))
	}
	if len(taus) == 0 {
		return 0, 0, false
	}
	return stat.Mean(taus, weights), stat.Mean(weights, nil), true
}
