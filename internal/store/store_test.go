package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skein-aero/tracksync/internal/align"
	"github.com/skein-aero/tracksync/internal/payload"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "tracksync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.MigrateUp(MigrationsFS()))
	return db
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.MigrateUp(MigrationsFS()))

	version, dirty, err := db.MigrateVersion(MigrationsFS())
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
}

func TestMigrateDown(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.MigrateDown(MigrationsFS()))

	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name = 'alignments'
	`).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRecordAndListOutcomes(t *testing.T) {
	db := openTestDB(t)

	residual := 0.42
	ok := payload.Outcome{
		Stream: payload.StreamGNSS,
		Mode:   payload.ModePosition,
		Result: align.Result{
			TimeOffsetSeconds:      0.215,
			Quality:                0.97,
			ResidualSpatialOffsetM: &residual,
			Status:                 align.StatusOK,
			PerAxis: map[string]align.AxisResult{
				"east": {LagSamples: 21, SubSampleOffset: 0.5, Score: 0.98, OffsetSeconds: 0.215, Status: align.StatusOK},
			},
		},
	}
	failed := payload.Outcome{
		Stream: payload.StreamGimbalPitch,
		Mode:   payload.ModeAttitude,
		Result: align.Result{Status: align.StatusDegenerateSignal},
	}

	const session = "session-abc"
	id1, err := db.RecordOutcome(session, ok)
	require.NoError(t, err)
	require.NotEmpty(t, id1)
	_, err = db.RecordOutcome(session, failed)
	require.NoError(t, err)
	_, err = db.RecordOutcome("other-session", ok)
	require.NoError(t, err)

	records, err := db.ListSession(session)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byStream := map[string]AlignmentRecord{}
	for _, r := range records {
		byStream[r.Stream] = r
	}

	g := byStream[payload.StreamGNSS]
	assert.Equal(t, string(align.StatusOK), g.Status)
	assert.InDelta(t, 0.215, g.TimeOffsetSeconds, 1e-9)
	assert.True(t, g.ResidualSpatialOffsetM.Valid)
	assert.InDelta(t, 0.42, g.ResidualSpatialOffsetM.Float64, 1e-9)
	assert.Contains(t, g.PerAxisJSON, `"east"`)

	d := byStream[payload.StreamGimbalPitch]
	assert.Equal(t, string(align.StatusDegenerateSignal), d.Status)
	assert.False(t, d.ResidualSpatialOffsetM.Valid)
}

func TestRecordOutcomeRejectsInvalidInput(t *testing.T) {
	db := openTestDB(t)

	bad := payload.Outcome{
		Stream: payload.StreamGNSS,
		Mode:   payload.ModePosition,
		Err:    align.ErrInvalidInput,
	}
	_, err := db.RecordOutcome("session-x", bad)
	assert.Error(t, err)
}
