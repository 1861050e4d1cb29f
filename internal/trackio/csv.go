// Package trackio reads telemetry tracks from CSV exports. Two layouts are
// supported: position tracks (timestamp,lat,lon,alt) and single-angle
// attitude tracks (timestamp,angle). Timestamps are seconds as decimal
// numbers; an optional header row is detected and skipped.
package trackio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/skein-aero/tracksync/internal/align"
	"github.com/skein-aero/tracksync/internal/geo"
)

// LoadPositionCSV reads a position track from a CSV file with columns
// timestamp,lat,lon,alt.
func LoadPositionCSV(path string) (align.PositionTrack, error) {
	rows, err := readRows(path, 4)
	if err != nil {
		return align.PositionTrack{}, err
	}

	track := align.PositionTrack{
		Times:  make([]float64, len(rows)),
		Points: make([]geo.Point, len(rows)),
	}
	for i, row := range rows {
		track.Times[i] = row[0]
		track.Points[i] = geo.Point{LatDeg: row[1], LonDeg: row[2], AltM: row[3]}
	}
	return track, nil
}

// LoadAttitudeCSV reads an attitude track from a CSV file with columns
// timestamp,angle.
func LoadAttitudeCSV(path string) (align.AttitudeTrack, error) {
	rows, err := readRows(path, 2)
	if err != nil {
		return align.AttitudeTrack{}, err
	}

	track := align.AttitudeTrack{
		Times:     make([]float64, len(rows)),
		AnglesDeg: make([]float64, len(rows)),
	}
	for i, row := range rows {
		track.Times[i] = row[0]
		track.AnglesDeg[i] = row[1]
	}
	return track, nil
}

// readRows parses every record into columns floats. A first record whose
// leading field does not parse as a number is treated as a header.
func readRows(path string, columns int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open track file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = columns
	r.TrimLeadingSpace = true

	var rows [][]float64
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		line++

		if line == 1 {
			if _, err := strconv.ParseFloat(record[0], 64); err != nil {
				continue // header row
			}
		}

		row := make([]float64, columns)
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d column %d: %w", path, line, i+1, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s contains no samples", path)
	}
	return rows, nil
}
