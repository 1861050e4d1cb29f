package align

// Status classifies the outcome of an alignment call. "No usable offset" is
// an expected result for real flight data, so these are reported outcomes
// carried on the result record, not errors.
type Status string

const (
	// StatusOK indicates a converged offset estimate.
	StatusOK Status = "ok"
	// StatusInsufficientOverlap indicates the tracks' time spans intersect
	// in fewer than the configured minimum of common-grid samples.
	StatusInsufficientOverlap Status = "insufficient_overlap"
	// StatusDegenerateSignal indicates a near-constant signal or a
	// correlation peak on the search window boundary.
	StatusDegenerateSignal Status = "degenerate_signal"
)

// AxisResult is the correlation outcome for one signal axis.
type AxisResult struct {
	// LagSamples is the integer lag of the strongest correlation peak.
	LagSamples int `json:"lag_samples"`
	// SubSampleOffset is the parabolic refinement in (-0.5, 0.5) samples.
	SubSampleOffset float64 `json:"sub_sample_offset"`
	// Score is the signed normalized correlation at the peak, in [-1, 1].
	Score float64 `json:"normalized_score"`
	// OffsetSeconds is the refined lag expressed in seconds:
	// (LagSamples + SubSampleOffset) / RateHz.
	OffsetSeconds float64 `json:"offset_seconds"`
	// Status is StatusOK or StatusDegenerateSignal; fusion only uses OK axes.
	Status Status `json:"status"`

	// Diagnostics carries the full correlation curve when the call was
	// configured to capture it. Not serialized with the result record.
	Diagnostics *AxisDiagnostics `json:"-"`
}

// AxisDiagnostics is the raw correlation curve for one axis, kept for
// plotting and reports.
type AxisDiagnostics struct {
	Lags   []int
	Scores []float64
}

// Result is the externally visible output of one alignment call. Add
// TimeOffsetSeconds to the target track's timestamps to align it with the
// reference. The record is immutable once returned and shaped for direct
// JSON serialization by a persistence collaborator.
type Result struct {
	TimeOffsetSeconds float64 `json:"time_offset_seconds"`
	// Quality is the fused confidence in [0, 1]: the mean |score| over the
	// axes that contributed to the offset.
	Quality float64               `json:"quality"`
	PerAxis map[string]AxisResult `json:"per_axis,omitempty"`
	// ResidualSpatialOffsetM is the mean spatial discrepancy remaining
	// after applying the offset. Only set for position-based alignment;
	// a validation metric, never used to adjust the offset.
	ResidualSpatialOffsetM *float64 `json:"residual_spatial_offset_m,omitempty"`
	Status                 Status   `json:"status"`
}

// OK reports whether the alignment converged.
func (r Result) OK() bool { return r.Status == StatusOK }

// ChainedResult combines two pairwise alignments through a shared
// intermediate track: offset(target→reference) =
// offset(target→intermediate) + offset(intermediate→reference).
type ChainedResult struct {
	TimeOffsetSeconds float64 `json:"time_offset_seconds"`
	Stage1            Result  `json:"stage_1"`
	Stage2            Result  `json:"stage_2"`
	// Status is StatusOK only when both stages converged; otherwise it is
	// the first failing stage's status.
	Status Status `json:"status"`
}
