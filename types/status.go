package types

// StatusText is the textual representation of the
// outcome of a benchmark run.
type StatusText string

// PriorityOver returns whether s has priority over other.
// For example, a Failed status has priority over OverBudget.
func (s StatusText) PriorityOver(other StatusText) bool {
	if s == other {
		return false
	}
	switch s {
	case StatusFailed:
		return true
	case StatusOverBudget:
		if other == StatusFailed {
			return false
		}
		return true
	case StatusOK:
		if other == StatusUnknown {
			return true
		}
		return false
	}
	return false
}

// Text representations for the outcome of a benchmark.
const (
	StatusOK         StatusText = "ok"
	StatusOverBudget StatusText = "over-budget"
	StatusFailed     StatusText = "failed"
	StatusUnknown    StatusText = "unknown"
)
