package types

import (
	"time"
)

// Samples is a list of per-iteration durations that can be
// sorted ascending.
type Samples []time.Duration

func (s Samples) Len() int           { return len(s) }
func (s Samples) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s Samples) Less(i, j int) bool { return s[i] < s[j] }
