package payload

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/skein-aero/tracksync/internal/align"
)

// Stream names used for session outcomes and persisted records.
const (
	StreamGNSS         = "gnss"
	StreamGimbalPitch  = "gimbal_pitch"
	StreamInclinometer = "inclinometer"
)

// Mode records which orchestrator entry point produced an outcome.
type Mode string

const (
	ModePosition Mode = "position"
	ModeAttitude Mode = "attitude"
	ModeChained  Mode = "chained"
)

// Outcome is the per-stream result of one session. Err is set only for
// input-contract violations; recoverable failures live in Result.Status.
type Outcome struct {
	Stream string       `json:"stream"`
	Mode   Mode         `json:"mode"`
	Result align.Result `json:"result"`
	// Chained is set for two-stage alignments, with Result mirroring the
	// combined offset and the weaker stage's quality.
	Chained *align.ChainedResult `json:"chained,omitempty"`
	Err     error                `json:"-"`
}

// Session aligns every present payload sensor against one reference. Each
// session has a UUID so persisted records from repeated runs stay apart.
type Session struct {
	ID       string
	Config   align.Config
	Ref      Reference
	outcomes map[string]Outcome
}

// NewSession creates a session for one reference telemetry set.
func NewSession(ref Reference, cfg align.Config) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Config:   cfg,
		Ref:      ref,
		outcomes: make(map[string]Outcome),
	}
}

// Outcomes returns the per-stream outcomes recorded so far.
func (s *Session) Outcomes() map[string]Outcome {
	out := make(map[string]Outcome, len(s.outcomes))
	for k, v := range s.outcomes {
		out[k] = v
	}
	return out
}

// AlignAll aligns every sensor present in the payload. A failure on one
// stream is recorded in its outcome and never aborts the remaining streams.
func (s *Session) AlignAll(p Payload) map[string]Outcome {
	if p.GNSS != nil {
		s.AlignPosition(StreamGNSS, *p.GNSS)
	}
	if p.GimbalPitch != nil {
		s.AlignGimbal(*p.GimbalPitch)
	}
	if p.Inclinometer != nil {
		s.AlignInclinometer(*p.Inclinometer, p.GimbalPitch)
	}
	return s.Outcomes()
}

// AlignPosition aligns a secondary position track against the reference
// GNSS track.
func (s *Session) AlignPosition(stream string, tgt align.PositionTrack) Outcome {
	res, err := align.AlignPosition(s.Ref.Position, tgt, s.Config)
	return s.record(Outcome{Stream: stream, Mode: ModePosition, Result: res, Err: err})
}

// AlignGimbal aligns the gimbal pitch log against the platform pitch series.
func (s *Session) AlignGimbal(tgt align.AttitudeTrack) Outcome {
	if s.Ref.Pitch == nil {
		err := fmt.Errorf("%w: no reference pitch series for gimbal alignment", align.ErrInvalidInput)
		return s.record(Outcome{Stream: StreamGimbalPitch, Mode: ModeAttitude, Err: err})
	}
	res, err := align.AlignAttitude(*s.Ref.Pitch, tgt, s.Config)
	return s.record(Outcome{Stream: StreamGimbalPitch, Mode: ModeAttitude, Result: res, Err: err})
}

// AlignInclinometer aligns the inclinometer in two stages: platform pitch ↔
// gimbal pitch, then gimbal pitch ↔ inclinometer. The two stage offsets sum
// to offset(inclinometer → reference).
func (s *Session) AlignInclinometer(tgt align.AttitudeTrack, gimbal *align.AttitudeTrack) Outcome {
	if s.Ref.Pitch == nil || gimbal == nil {
		err := fmt.Errorf("%w: chained alignment needs both reference pitch and gimbal pitch", align.ErrInvalidInput)
		return s.record(Outcome{Stream: StreamInclinometer, Mode: ModeChained, Err: err})
	}

	stage1, err := align.AlignAttitude(*s.Ref.Pitch, *gimbal, s.Config)
	if err != nil {
		return s.record(Outcome{Stream: StreamInclinometer, Mode: ModeChained, Err: err})
	}
	stage2, err := align.AlignAttitude(*gimbal, tgt, s.Config)
	if err != nil {
		return s.record(Outcome{Stream: StreamInclinometer, Mode: ModeChained, Err: err})
	}

	chained := align.Chain(stage1, stage2)
	res := align.Result{
		TimeOffsetSeconds: chained.TimeOffsetSeconds,
		Quality:           min(stage1.Quality, stage2.Quality),
		Status:            chained.Status,
	}
	return s.record(Outcome{Stream: StreamInclinometer, Mode: ModeChained, Result: res, Chained: &chained})
}

func (s *Session) record(o Outcome) Outcome {
	switch {
	case o.Err != nil:
		log.Printf("payload: session %s stream %s: invalid input: %v", s.ID, o.Stream, o.Err)
	case !o.Result.OK():
		log.Printf("payload: session %s stream %s: no usable offset (%s)", s.ID, o.Stream, o.Result.Status)
	default:
		log.Printf("payload: session %s stream %s: offset %.4fs quality %.3f", s.ID, o.Stream, o.Result.TimeOffsetSeconds, o.Result.Quality)
	}
	s.outcomes[o.Stream] = o
	return o
}
