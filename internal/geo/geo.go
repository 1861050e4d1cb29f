// Package geo converts geodetic coordinates into a local tangent-plane
// Cartesian frame for track comparison. The projection is the equirectangular
// approximation: adequate at flight-scale distances (tens of kilometres) and
// much cheaper than full WGS-84 geodesy.
package geo

import "math"

// EarthRadiusM is the mean Earth radius used by the tangent-plane projection.
const EarthRadiusM = 6371000.0

// Point is a geodetic coordinate sample.
type Point struct {
	LatDeg float64
	LonDeg float64
	AltM   float64
}

// Valid reports whether all three components are real numbers.
func (p Point) Valid() bool {
	return !math.IsNaN(p.LatDeg) && !math.IsNaN(p.LonDeg) && !math.IsNaN(p.AltM)
}

// ENU is an East-North-Up offset in metres relative to a projection origin.
type ENU struct {
	East  float64
	North float64
	Up    float64
}

// Project converts geodetic samples into ENU offsets relative to origin.
//
//	E = R * Δlon * cos(origin.lat)
//	N = R * Δlat
//	U = alt - origin.alt
//
// NaN components in a sample propagate into the corresponding ENU triple;
// filtering them is the caller's concern (the resampler drops NaN rows).
func Project(origin Point, samples []Point) []ENU {
	cosLat := math.Cos(origin.LatDeg * math.Pi / 180)

	out := make([]ENU, len(samples))
	for i, s := range samples {
		dLat := (s.LatDeg - origin.LatDeg) * math.Pi / 180
		dLon := (s.LonDeg - origin.LonDeg) * math.Pi / 180
		out[i] = ENU{
			East:  EarthRadiusM * dLon * cosLat,
			North: EarthRadiusM * dLat,
			Up:    s.AltM - origin.AltM,
		}
	}
	return out
}

// FirstValid returns the index of the first sample with no NaN components,
// or -1 if every sample is invalid. The alignment orchestrator uses it to
// pick the projection origin from the reference track.
func FirstValid(samples []Point) int {
	for i, s := range samples {
		if s.Valid() {
			return i
		}
	}
	return -1
}
