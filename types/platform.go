package types

import (
	"fmt"
	"os"
	"runtime"
)

// Platform describes the machine and evaluator a report was
// produced on.
type Platform struct {
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	CPUs     int    `json:"cpus"`
	Hostname string `json:"hostname,omitempty"`

	// Evaluator is the external evaluator command the benchmarks
	// were delegated to, and EvaluatorVersion whatever its
	// version subcommand reported.
	Evaluator        string `json:"evaluator,omitempty"`
	EvaluatorVersion string `json:"evaluator_version,omitempty"`
}

// CurrentPlatform returns the descriptor for the machine the
// harness is running on. Evaluator fields are filled in by the
// harness once the evaluator has been queried.
func CurrentPlatform() Platform {
	hostname, _ := os.Hostname()
	return Platform{
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
		CPUs:     runtime.NumCPU(),
		Hostname: hostname,
	}
}

// String returns the platform in a compact single-line form.
func (p Platform) String() string {
	s := fmt.Sprintf("%s/%s (%d cpus)", p.OS, p.Arch, p.CPUs)
	if p.Evaluator != "" {
		s += " " + p.Evaluator
		if p.EvaluatorVersion != "" {
			s += " " + p.EvaluatorVersion
		}
	}
	return s
}
