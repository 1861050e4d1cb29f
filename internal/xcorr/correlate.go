// Package xcorr computes bounded normalized cross-correlation between two
// equal-length, equally spaced signals and refines the correlation peak to
// sub-sample precision. It is the numeric heart of time alignment: the lag
// maximising |score| is the candidate clock offset between two streams.
package xcorr

import (
	"errors"
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrDegenerateSignal is returned when correlation cannot produce a usable
// peak: a signal with near-zero variance, or a peak sitting on the search
// window boundary (the true offset is not bounded within the window).
var ErrDegenerateSignal = errors.New("degenerate signal")

// varianceFloor guards the normalization denominator. Mean-removed energy
// below this is treated as a constant signal.
const varianceFloor = 1e-12

// Correlate computes the normalized cross-correlation of x and y over
// integer lags in [-maxLag, +maxLag]:
//
//	R[τ] = Σ_t x[t]·y[t+τ]
//	score[τ] = R[τ] / sqrt(Σ_t x[t]² · Σ_t y[t+τ]²)
//
// The sums run over the n-|τ| overlapping samples, and the normalization
// energies are taken over the same overlapping segments. Normalizing by the
// full-signal energy instead would shrink scores as |τ| grows and bias the
// peak toward lag 0. Both signals are mean-removed first so a shared DC
// level does not flatten the peak. Scores fall in [-1, 1]. Returns
// ErrDegenerateSignal when either signal has near-zero variance.
func Correlate(x, y []float64, maxLag int) (lags []int, scores []float64, err error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("signal lengths differ: %d vs %d", len(x), len(y))
	}
	n := len(x)
	if maxLag < 1 {
		return nil, nil, fmt.Errorf("maxLag must be positive, got %d", maxLag)
	}
	if maxLag >= n {
		maxLag = n - 1
	}

	xc := demeaned(x)
	yc := demeaned(y)

	energyX := floats.Dot(xc, xc)
	energyY := floats.Dot(yc, yc)
	if energyX < varianceFloor || energyY < varianceFloor {
		return nil, nil, fmt.Errorf("%w: near-zero variance (energies %.3g, %.3g)", ErrDegenerateSignal, energyX, energyY)
	}

	lags = make([]int, 0, 2*maxLag+1)
	scores = make([]float64, 0, 2*maxLag+1)
	for tau := -maxLag; tau <= maxLag; tau++ {
		var xs, ys []float64
		if tau >= 0 {
			xs, ys = xc[:n-tau], yc[tau:]
		} else {
			xs, ys = xc[-tau:], yc[:n+tau]
		}
		score := 0.0
		ex := floats.Dot(xs, xs)
		ey := floats.Dot(ys, ys)
		if ex > varianceFloor && ey > varianceFloor {
			score = floats.Dot(xs, ys) / math.Sqrt(ex*ey)
		}
		lags = append(lags, tau)
		scores = append(scores, score)
	}
	return lags, scores, nil
}

func demeaned(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	floats.AddConst(-stat.Mean(x, nil), out)
	return out
}

// Peak is an integer-lag correlation maximum refined to sub-sample
// precision. Delta lies in (-0.5, 0.5); the refined lag is Lag+Delta
// samples. Score keeps its sign: a strong negative correlation is still a
// usable alignment signal, the sign does not affect the offset.
type Peak struct {
	Lag   int
	Delta float64
	Score float64
}

// LocatePeak finds the lag maximising |score| and refines it by fitting a
// parabola through the three magnitudes around the peak. A peak on either
// boundary of the search window returns ErrDegenerateSignal rather than
// silently reporting the boundary lag as converged.
func LocatePeak(lags []int, scores []float64) (Peak, error) {
	if len(lags) == 0 || len(lags) != len(scores) {
		return Peak{}, fmt.Errorf("malformed correlation curve: %d lags, %d scores", len(lags), len(scores))
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if math.Abs(scores[i]) > math.Abs(scores[best]) {
			best = i
		}
	}

	if best == 0 || best == len(scores)-1 {
		return Peak{}, fmt.Errorf("%w: correlation peak on search window boundary (lag %d)", ErrDegenerateSignal, lags[best])
	}

	if scores[best] < 0 {
		log.Printf("xcorr: strongest peak is negative (%.3f at lag %d); using magnitude", scores[best], lags[best])
	}

	y1 := math.Abs(scores[best-1])
	y2 := math.Abs(scores[best])
	y3 := math.Abs(scores[best+1])

	delta := 0.0
	if denom := y1 - 2*y2 + y3; denom != 0 {
		delta = (y1 - y3) / (2 * denom)
	}
	// A collinear/flat top yields delta 0; anything outside (-0.5, 0.5)
	// means the parabola does not describe a local max here. The epsilon
	// catches symmetric plateaus whose delta rounds to just under 0.5.
	if delta <= -0.5+1e-9 || delta >= 0.5-1e-9 {
		delta = 0
	}

	return Peak{Lag: lags[best], Delta: delta, Score: scores[best]}, nil
}
