package align

import (
	"errors"
	"fmt"

	"github.com/skein-aero/tracksync/internal/geo"
	"github.com/skein-aero/tracksync/internal/timeseries"
)

// ErrInvalidInput marks precondition violations (non-increasing timestamps,
// mismatched lengths, an all-NaN track) that indicate an upstream bug. These
// surface as errors instead of degrading into a result status.
var ErrInvalidInput = timeseries.ErrInvalidInput

// PositionTrack is a geodetic position stream: one geodetic point per
// timestamp. Timestamps are in seconds and must be strictly increasing;
// the caller enforces ordering, alignment does not sort.
type PositionTrack struct {
	Times  []float64
	Points []geo.Point
}

// Validate checks the input contract for a position track.
func (tr PositionTrack) Validate() error {
	if len(tr.Points) != len(tr.Times) {
		return fmt.Errorf("%w: %d points for %d timestamps", ErrInvalidInput, len(tr.Points), len(tr.Times))
	}
	lat, lon, alt := tr.columns()
	return timeseries.Validate(tr.Times, lat, lon, alt)
}

// columns splits the geodetic samples into per-component slices.
func (tr PositionTrack) columns() (lat, lon, alt []float64) {
	lat = make([]float64, len(tr.Points))
	lon = make([]float64, len(tr.Points))
	alt = make([]float64, len(tr.Points))
	for i, p := range tr.Points {
		lat[i], lon[i], alt[i] = p.LatDeg, p.LonDeg, p.AltM
	}
	return lat, lon, alt
}

// enuColumns projects the track into the origin's tangent plane and returns
// per-axis value slices in E, N, U order.
func (tr PositionTrack) enuColumns(origin geo.Point) [][]float64 {
	enu := geo.Project(origin, tr.Points)
	e := make([]float64, len(enu))
	n := make([]float64, len(enu))
	u := make([]float64, len(enu))
	for i, s := range enu {
		e[i], n[i], u[i] = s.East, s.North, s.Up
	}
	return [][]float64{e, n, u}
}

// AttitudeTrack is a single-angle stream (e.g. gimbal pitch) in degrees.
type AttitudeTrack struct {
	Times     []float64
	AnglesDeg []float64
}

// Validate checks the input contract for an attitude track.
func (tr AttitudeTrack) Validate() error {
	return timeseries.Validate(tr.Times, tr.AnglesDeg)
}

// IsInvalidInput reports whether err is an input-contract violation, as
// opposed to a recoverable alignment failure carried in a result status.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
