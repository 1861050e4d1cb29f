package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/skein-aero/tracksync/internal/payload"
)

// AlignmentRecord is one persisted alignment outcome.
type AlignmentRecord struct {
	ID                     string
	SessionID              string
	Stream                 string
	Mode                   string
	Status                 string
	TimeOffsetSeconds      float64
	Quality                float64
	ResidualSpatialOffsetM sql.NullFloat64
	PerAxisJSON            string
	// Timestamp is the insertion time as stored by sqlite (UTC text form).
	Timestamp string
}

// RecordOutcome persists one session outcome. Outcomes carrying an
// input-contract error are not persisted; they indicate an upstream bug,
// not a data point.
func (db *DB) RecordOutcome(sessionID string, o payload.Outcome) (string, error) {
	if o.Err != nil {
		return "", fmt.Errorf("refusing to persist invalid-input outcome for stream %q: %w", o.Stream, o.Err)
	}

	perAxis, err := json.Marshal(o.Result.PerAxis)
	if err != nil {
		return "", fmt.Errorf("failed to encode per-axis results: %w", err)
	}

	var residual sql.NullFloat64
	if o.Result.ResidualSpatialOffsetM != nil {
		residual = sql.NullFloat64{Float64: *o.Result.ResidualSpatialOffsetM, Valid: true}
	}

	id := uuid.NewString()
	_, err = db.Exec(`
		INSERT INTO alignments (
			id, session_id, stream, mode, status,
			time_offset_seconds, quality, residual_spatial_offset_m, per_axis_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, sessionID, o.Stream, string(o.Mode), string(o.Result.Status),
		o.Result.TimeOffsetSeconds, o.Result.Quality, residual, string(perAxis),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert alignment record: %w", err)
	}
	return id, nil
}

// ListSession returns every alignment record for one session, oldest first.
func (db *DB) ListSession(sessionID string) ([]AlignmentRecord, error) {
	rows, err := db.Query(`
		SELECT id, session_id, stream, mode, status,
		       time_offset_seconds, quality, residual_spatial_offset_m,
		       per_axis_json, timestamp
		FROM alignments
		WHERE session_id = ?
		ORDER BY timestamp, stream`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query alignments: %w", err)
	}
	defer rows.Close()

	var records []AlignmentRecord
	for rows.Next() {
		var r AlignmentRecord
		if err := rows.Scan(
			&r.ID, &r.SessionID, &r.Stream, &r.Mode, &r.Status,
			&r.TimeOffsetSeconds, &r.Quality, &r.ResidualSpatialOffsetM,
			&r.PerAxisJSON, &r.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alignment record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
