package types

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fatih/color"
)

// Result is the result of running a single benchmark.
type Result struct {
	// Name is the name of the benchmark as configured in its
	// registry. It should be unique within its kind.
	Name string `json:"name,omitempty"`

	// Kind is the benchmark kind ("micro", "output" or "parser").
	Kind string `json:"kind,omitempty"`

	// Subject is the expression/module/URI that was measured.
	Subject string `json:"subject,omitempty"`

	// Timestamp is when the benchmark ran; UTC UnixNano format.
	Timestamp int64 `json:"timestamp,omitempty"`

	// Iterations is how many timed samples were taken.
	Iterations int `json:"iterations,omitempty"`

	// Repetitions is how many evaluator invocations each
	// sample averages over.
	Repetitions int `json:"repetitions,omitempty"`

	// IterationTime is the per-iteration duration budget that
	// was configured. Leave 0 if irrelevant.
	IterationTime time.Duration `json:"iteration_time,omitempty"`

	// Samples holds each iteration's duration. Only recorded
	// when the benchmark ran verbose; when present, its length
	// equals Iterations.
	Samples Samples `json:"samples,omitempty"`

	// Stats holds the statistics computed from the samples at
	// run time. It is persisted so reports remain meaningful
	// when Samples were not recorded.
	Stats Stats `json:"stats"`

	// WithinBudget, OverBudget, and Failed contain the ultimate
	// conclusion about the benchmark. Exactly one of these
	// should be true; any more or less is a bug.
	WithinBudget bool `json:"within_budget,omitempty"`
	OverBudget   bool `json:"over_budget,omitempty"`
	Failed       bool `json:"failed,omitempty"`

	// Notice contains a description of some condition of this
	// run that might have affected the result in some way. For
	// example, that the mean exceeded the iteration budget.
	Notice string `json:"notice,omitempty"`

	// Message carries the evaluator's error verbatim when the
	// benchmark failed.
	Message string `json:"message,omitempty"`
}

func NewResult() Result {
	return Result{
		Timestamp: Timestamp(),
	}
}

// ComputeStats computes statistics over r.Samples.
func (r Result) ComputeStats() Stats {
	var s Stats
	if len(r.Samples) == 0 {
		return s
	}

	for _, d := range r.Samples {
		s.Total += d
		if d < s.Min || s.Min == 0 {
			s.Min = d
		}
		if d > s.Max || s.Max == 0 {
			s.Max = d
		}
	}
	sorted := make(Samples, len(r.Samples))
	copy(sorted, r.Samples)
	sort.Sort(sorted)

	half := len(sorted) / 2
	if len(sorted)%2 == 0 {
		s.Median = (sorted[half-1] + sorted[half]) / 2
	} else {
		s.Median = sorted[half]
	}

	s.Mean = time.Duration(int64(s.Total) / int64(len(r.Samples)))

	if len(r.Samples) > 1 {
		var sqsum float64
		for _, d := range r.Samples {
			diff := float64(d - s.Mean)
			sqsum += diff * diff
		}
		variance := sqsum / float64(len(r.Samples)-1)
		s.Stdev = time.Duration(math.Sqrt(variance))
		s.Error = time.Duration(math.Sqrt(variance / float64(len(r.Samples))))
	}

	return s
}

// Validate reports whether r is internally consistent: samples,
// when recorded, must cover every iteration.
func (r Result) Validate() error {
	if len(r.Samples) > 0 && len(r.Samples) != r.Iterations {
		return fmt.Errorf("result %s/%s: %d samples for %d iterations",
			r.Kind, r.Name, len(r.Samples), r.Iterations)
	}
	return nil
}

// DisableColor disables ANSI colors in the Result default string.
func DisableColor() {
	color.NoColor = true
}

// String returns a human-readable rendering of r.
func (r Result) String() string {
	s := fmt.Sprintf("== %s - %s\n", r.Name, r.Subject)
	s += fmt.Sprintf("       Kind: %s\n", r.Kind)
	s += fmt.Sprintf(" Iterations: %d x %d reps\n", r.Iterations, r.Repetitions)
	if r.IterationTime > 0 {
		s += fmt.Sprintf("     Budget: %s\n", r.IterationTime)
	}
	s += fmt.Sprintf("        Max: %s\n", r.Stats.Max)
	s += fmt.Sprintf("        Min: %s\n", r.Stats.Min)
	s += fmt.Sprintf("       Mean: %s\n", r.Stats.Mean)
	s += fmt.Sprintf("      Stdev: %s\n", r.Stats.Stdev)
	s += fmt.Sprintf("      Error: %s\n", r.Stats.Error)
	if len(r.Samples) > 0 {
		s += fmt.Sprintf("    Samples: %v\n", r.Samples)
	}
	if r.Notice != "" {
		s += fmt.Sprintf("     Notice: %s\n", r.Notice)
	}
	statusLine := fmt.Sprintf(" Assessment: %v\n", r.Status())
	switch r.Status() {
	case StatusOK:
		statusLine = color.GreenString(statusLine)
	case StatusOverBudget:
		statusLine = color.YellowString(statusLine)
	case StatusFailed:
		statusLine = color.RedString(statusLine)
	}
	s += statusLine
	return s
}

// Status returns a text representation of the overall outcome
// indicated in r.
func (r Result) Status() StatusText {
	switch {
	case r.Failed:
		return StatusFailed
	case r.OverBudget:
		return StatusOverBudget
	case r.WithinBudget:
		return StatusOK
	}
	return StatusUnknown
}
