package align

// Config holds tuning parameters for one alignment call. Zero values fall
// back to the defaults, so a zero Config behaves like DefaultConfig().
type Config struct {
	// RateHz is the shared resampling rate. 100 Hz resolves sub-10ms
	// offsets without excessive compute.
	RateHz float64

	// MaxLagSeconds bounds the correlation search window on each side.
	// Unbounded lag is wasted compute and risks spurious peaks.
	MaxLagSeconds float64

	// MinOverlapSamples is the minimum number of common-grid samples the
	// two tracks must share before correlation is attempted.
	MinOverlapSamples int

	// CaptureDiagnostics attaches the full correlation curve to each axis
	// result for plotting and reporting. Off by default: the curves are
	// 2*MaxLagSeconds*RateHz points per axis.
	CaptureDiagnostics bool
}

// DefaultConfig returns the standard alignment tuning.
func DefaultConfig() Config {
	return Config{
		RateHz:            100.0,
		MaxLagSeconds:     10.0,
		MinOverlapSamples: 8,
	}
}

// sanitized fills zero or negative fields with defaults.
func (c Config) sanitized() Config {
	d := DefaultConfig()
	if c.RateHz <= 0 {
		c.RateHz = d.RateHz
	}
	if c.MaxLagSeconds <= 0 {
		c.MaxLagSeconds = d.MaxLagSeconds
	}
	if c.MinOverlapSamples <= 0 {
		c.MinOverlapSamples = d.MinOverlapSamples
	}
	return c
}

// maxLagSamples derives the integer correlation window from the configured
// search window in seconds.
func (c Config) maxLagSamples() int {
	n := int(c.MaxLagSeconds * c.RateHz)
	if n < 1 {
		n = 1
	}
	return n
}
