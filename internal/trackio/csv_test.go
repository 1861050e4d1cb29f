package trackio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skein-aero/tracksync/internal/align"
	"github.com/skein-aero/tracksync/internal/geo"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadPositionCSV(t *testing.T) {
	path := writeCSV(t, "timestamp,lat,lon,alt\n"+
		"0.0,48.2000,16.3000,180.0\n"+
		"0.1,48.2001,16.3001,180.5\n"+
		"0.2,48.2002,16.3002,181.0\n")

	track, err := LoadPositionCSV(path)
	require.NoError(t, err)

	want := align.PositionTrack{
		Times: []float64{0.0, 0.1, 0.2},
		Points: []geo.Point{
			{LatDeg: 48.2000, LonDeg: 16.3000, AltM: 180.0},
			{LatDeg: 48.2001, LonDeg: 16.3001, AltM: 180.5},
			{LatDeg: 48.2002, LonDeg: 16.3002, AltM: 181.0},
		},
	}
	if diff := cmp.Diff(want, track); diff != "" {
		t.Errorf("track mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPositionCSVWithoutHeader(t *testing.T) {
	path := writeCSV(t, "0.0,48.2,16.3,180\n0.1,48.2,16.3,180\n")

	track, err := LoadPositionCSV(path)
	require.NoError(t, err)
	assert.Len(t, track.Times, 2)
}

func TestLoadAttitudeCSV(t *testing.T) {
	path := writeCSV(t, "timestamp,angle\n0.00,-12.5\n0.05,-12.1\n0.10,-11.8\n")

	track, err := LoadAttitudeCSV(path)
	require.NoError(t, err)

	require.Len(t, track.Times, 3)
	assert.Equal(t, -12.1, track.AnglesDeg[1])
	assert.Equal(t, 0.10, track.Times[2])
}

func TestLoadAttitudeCSVBadField(t *testing.T) {
	path := writeCSV(t, "timestamp,angle\n0.00,-12.5\n0.05,oops\n")

	_, err := LoadAttitudeCSV(path)
	assert.ErrorContains(t, err, "line 3")
}

func TestLoadPositionCSVWrongColumnCount(t *testing.T) {
	path := writeCSV(t, "0.0,48.2,16.3\n")

	_, err := LoadPositionCSV(path)
	assert.Error(t, err)
}

func TestLoadPositionCSVEmpty(t *testing.T) {
	path := writeCSV(t, "timestamp,lat,lon,alt\n")

	_, err := LoadPositionCSV(path)
	assert.ErrorContains(t, err, "no samples")
}

func TestLoadPositionCSVMissingFile(t *testing.T) {
	_, err := LoadPositionCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
