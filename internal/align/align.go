// Package align estimates the constant clock offset between independently
// clocked telemetry streams by normalized cross-correlation. Position
// alignment projects two geodetic tracks into a shared tangent plane and
// correlates the three ENU axes; attitude alignment correlates a single
// angle series; chained alignment bridges two streams with no direct
// geometric overlap through a shared intermediate.
//
// The engine is synchronous and purely functional over its inputs: each
// call is independent and side-effect-free, so callers may parallelize
// multiple alignments freely.
package align

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/skein-aero/tracksync/internal/geo"
	"github.com/skein-aero/tracksync/internal/timeseries"
	"github.com/skein-aero/tracksync/internal/xcorr"
)

// enuAxisNames index-matches PositionTrack.enuColumns.
var enuAxisNames = [3]string{"east", "north", "up"}

// AlignPosition estimates the time offset between two geodetic position
// tracks. The returned offset, added to the target's timestamps, aligns it
// with the reference. Recoverable failures (insufficient overlap, degenerate
// signal) come back in the result's Status; only input-contract violations
// return an error.
func AlignPosition(ref, tgt PositionTrack, cfg Config) (Result, error) {
	cfg = cfg.sanitized()

	if err := ref.Validate(); err != nil {
		return Result{}, fmt.Errorf("reference track: %w", err)
	}
	if err := tgt.Validate(); err != nil {
		return Result{}, fmt.Errorf("target track: %w", err)
	}

	// The projection origin is the first valid sample of the reference
	// track, recomputed per call.
	oi := geo.FirstValid(ref.Points)
	if oi < 0 {
		return Result{}, fmt.Errorf("reference track: %w: no valid geodetic sample for origin", ErrInvalidInput)
	}
	origin := ref.Points[oi]

	refAxes := ref.enuColumns(origin)
	tgtAxes := tgt.enuColumns(origin)

	g, ri, ti, err := timeseries.Resample(ref.Times, refAxes, tgt.Times, tgtAxes, cfg.RateHz, cfg.MinOverlapSamples)
	if errors.Is(err, timeseries.ErrInsufficientOverlap) {
		log.Printf("align: position alignment aborted: %v", err)
		return Result{Status: StatusInsufficientOverlap}, nil
	}
	if err != nil {
		return Result{}, err
	}

	perAxis := make(map[string]AxisResult, len(enuAxisNames))
	for k, name := range enuAxisNames {
		perAxis[name] = correlateAxis(ri[k], ti[k], cfg)
	}

	offset, quality, ok := fuse(perAxis)
	if !ok {
		log.Printf("align: all %d axes degenerate over %d common samples", len(perAxis), g.N)
		return Result{PerAxis: perAxis, Status: StatusDegenerateSignal}, nil
	}

	res := Result{
		TimeOffsetSeconds: offset,
		Quality:           quality,
		PerAxis:           perAxis,
		Status:            StatusOK,
	}
	if r, rok := residualSpatial(ref.Times, refAxes, tgt.Times, tgtAxes, offset); rok {
		res.ResidualSpatialOffsetM = &r
	}
	return res, nil
}

// AlignAttitude estimates the time offset between two single-angle attitude
// series (e.g. gimbal pitch). No projection, no fusion, no spatial residual:
// the one axis's correlation result is the output directly.
func AlignAttitude(ref, tgt AttitudeTrack, cfg Config) (Result, error) {
	cfg = cfg.sanitized()

	if err := ref.Validate(); err != nil {
		return Result{}, fmt.Errorf("reference track: %w", err)
	}
	if err := tgt.Validate(); err != nil {
		return Result{}, fmt.Errorf("target track: %w", err)
	}

	_, ri, ti, err := timeseries.Resample(ref.Times, [][]float64{ref.AnglesDeg}, tgt.Times, [][]float64{tgt.AnglesDeg}, cfg.RateHz, cfg.MinOverlapSamples)
	if errors.Is(err, timeseries.ErrInsufficientOverlap) {
		log.Printf("align: attitude alignment aborted: %v", err)
		return Result{Status: StatusInsufficientOverlap}, nil
	}
	if err != nil {
		return Result{}, err
	}

	axis := correlateAxis(ri[0], ti[0], cfg)
	perAxis := map[string]AxisResult{"angle": axis}
	if axis.Status != StatusOK {
		return Result{PerAxis: perAxis, Status: StatusDegenerateSignal}, nil
	}

	return Result{
		TimeOffsetSeconds: axis.OffsetSeconds,
		Quality:           math.Abs(axis.Score),
		PerAxis:           perAxis,
		Status:            StatusOK,
	}, nil
}

// Chain combines two pairwise alignments through a shared intermediate:
// stage1 aligns the intermediate to the reference, stage2 the target to the
// intermediate. Both must have converged or the chain fails fast with the
// first failing stage's status.
func Chain(stage1, stage2 Result) ChainedResult {
	out := ChainedResult{Stage1: stage1, Stage2: stage2}
	if !stage1.OK() {
		out.Status = stage1.Status
		return out
	}
	if !stage2.OK() {
		out.Status = stage2.Status
		return out
	}
	out.TimeOffsetSeconds = stage1.TimeOffsetSeconds + stage2.TimeOffsetSeconds
	out.Status = StatusOK
	return out
}

// correlateAxis runs the correlator and peak locator on one resampled axis
// pair and folds any degenerate outcome into the axis status.
func correlateAxis(x, y []float64, cfg Config) AxisResult {
	lags, scores, err := xcorr.Correlate(x, y, cfg.maxLagSamples())
	if err != nil {
		return AxisResult{Status: StatusDegenerateSignal}
	}

	var ar AxisResult
	if cfg.CaptureDiagnostics {
		ar.Diagnostics = &AxisDiagnostics{Lags: lags, Scores: scores}
	}

	peak, err := xcorr.LocatePeak(lags, scores)
	if err != nil {
		ar.Status = StatusDegenerateSignal
		return ar
	}

	ar.LagSamples = peak.Lag
	ar.SubSampleOffset = peak.Delta
	ar.Score = peak.Score
	ar.OffsetSeconds = (float64(peak.Lag) + peak.Delta) / cfg.RateHz
	ar.Status = StatusOK
	return ar
}
