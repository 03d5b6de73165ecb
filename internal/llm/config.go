package llm

import "time"

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Config holds the generation client's timeout and retry policy. All
// thresholds are named configuration, not hard-coded constants.
type Config struct {
	Model             string
	Timeout           time.Duration
	MaxRetries        int
	BaseBackoff       time.Duration
	BackoffMultiplier float64
}

// DefaultConfig returns the default timeout and retry policy.
func DefaultConfig() Config {
	return Config{
		Model:             DefaultModel,
		Timeout:           60 * time.Second,
		MaxRetries:        3,
		BaseBackoff:       500 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}
