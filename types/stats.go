package types

import (
	"time"
)

// Stats is a type that holds statistics derived from a
// Result's Samples.
type Stats struct {
	Total  time.Duration `json:"total,omitempty"`
	Mean   time.Duration `json:"mean,omitempty"`
	Median time.Duration `json:"median,omitempty"`
	Min    time.Duration `json:"min,omitempty"`
	Max    time.Duration `json:"max,omitempty"`

	// Stdev is the sample standard deviation of the samples.
	Stdev time.Duration `json:"stdev,omitempty"`

	// Error is the standard error of the mean (stdev / sqrt(n)).
	Error time.Duration `json:"error,omitempty"`
}
