// Package config loads alignment tuning overrides from JSON files. Fields
// omitted from the file keep their defaults, so partial configs are safe.
// The alignment core itself only ever sees the resolved align.Config struct.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skein-aero/tracksync/internal/align"
)

// TuningConfig mirrors align.Config with pointer fields so a JSON file can
// override any subset of parameters.
type TuningConfig struct {
	RateHz             *float64 `json:"rate_hz,omitempty"`
	MaxLagSeconds      *float64 `json:"max_lag_seconds,omitempty"`
	MinOverlapSamples  *int     `json:"min_overlap_samples,omitempty"`
	CaptureDiagnostics *bool    `json:"capture_diagnostics,omitempty"`
}

// maxFileSize caps tuning files; anything larger is not a config file.
const maxFileSize = 1 * 1024 * 1024

// LoadTuningConfig loads a TuningConfig from a JSON file. The path must
// have a .json extension and the file must parse strictly (unknown fields
// are rejected to catch typos).
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var tc TuningConfig
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", cleanPath, err)
	}

	if err := tc.validate(); err != nil {
		return nil, err
	}
	return &tc, nil
}

func (tc *TuningConfig) validate() error {
	if tc.RateHz != nil && *tc.RateHz <= 0 {
		return fmt.Errorf("rate_hz must be positive, got %g", *tc.RateHz)
	}
	if tc.MaxLagSeconds != nil && *tc.MaxLagSeconds <= 0 {
		return fmt.Errorf("max_lag_seconds must be positive, got %g", *tc.MaxLagSeconds)
	}
	if tc.MinOverlapSamples != nil && *tc.MinOverlapSamples < 2 {
		return fmt.Errorf("min_overlap_samples must be at least 2, got %d", *tc.MinOverlapSamples)
	}
	return nil
}

// Apply overlays the non-nil tuning fields onto base and returns the result.
func (tc *TuningConfig) Apply(base align.Config) align.Config {
	if tc == nil {
		return base
	}
	if tc.RateHz != nil {
		base.RateHz = *tc.RateHz
	}
	if tc.MaxLagSeconds != nil {
		base.MaxLagSeconds = *tc.MaxLagSeconds
	}
	if tc.MinOverlapSamples != nil {
		base.MinOverlapSamples = *tc.MinOverlapSamples
	}
	if tc.CaptureDiagnostics != nil {
		base.CaptureDiagnostics = *tc.CaptureDiagnostics
	}
	return base
}
