// Package payload bundles the optional sensor tracks carried by one drone
// payload and drives their alignment against platform telemetry. Sensors
// are explicit optional fields: a missing sensor is a nil track, never an
// error, and one sensor's alignment failure never blocks the others.
package payload

import "github.com/skein-aero/tracksync/internal/align"

// Payload holds the decoded tracks recorded by one payload. Any field may
// be nil when the corresponding sensor was absent or produced no data.
type Payload struct {
	// GNSS is the payload's own position track (e.g. a second receiver).
	GNSS *align.PositionTrack
	// GimbalPitch is the gimbal attitude log, aligned against the
	// platform's pitch series.
	GimbalPitch *align.AttitudeTrack
	// Inclinometer has no GNSS fix and no shared clock with the platform;
	// it is aligned in two stages through the gimbal pitch log.
	Inclinometer *align.AttitudeTrack
}

// Reference is the platform telemetry the payload sensors are aligned to.
type Reference struct {
	// Position is the reference GNSS track. Required.
	Position align.PositionTrack
	// Pitch is the platform pitch series used for attitude alignment;
	// nil when the platform log carries no attitude channel.
	Pitch *align.AttitudeTrack
}
