package types

// Benchmark kinds. Each kind has its own registry in the harness
// configuration and its own mapping in the report.
const (
	KindMicro  = "micro"
	KindOutput = "output"
	KindParser = "parser"
)

// Report aggregates the results of one harness run. A kind's
// mapping is present only if at least one benchmark of that kind
// was configured.
type Report struct {
	// Timestamp is when the run occurred; UTC UnixNano format.
	Timestamp int64 `json:"timestamp,omitempty"`

	// Platform describes where the run took place.
	Platform Platform `json:"platform"`

	Micro  map[string]Result `json:"microbenchmarks,omitempty"`
	Output map[string]Result `json:"output_benchmarks,omitempty"`
	Parser map[string]Result `json:"parser_benchmarks,omitempty"`
}

func NewReport() Report {
	return Report{
		Timestamp: Timestamp(),
		Platform:  CurrentPlatform(),
	}
}

// Add files res under the mapping for its kind, allocating the
// mapping on first use so that empty registries never produce
// an empty mapping in the report.
func (r *Report) Add(res Result) {
	switch res.Kind {
	case KindMicro:
		if r.Micro == nil {
			r.Micro = make(map[string]Result)
		}
		r.Micro[res.Name] = res
	case KindOutput:
		if r.Output == nil {
			r.Output = make(map[string]Result)
		}
		r.Output[res.Name] = res
	case KindParser:
		if r.Parser == nil {
			r.Parser = make(map[string]Result)
		}
		r.Parser[res.Name] = res
	}
}

// Empty returns whether the report holds no results at all.
func (r Report) Empty() bool {
	return len(r.Micro) == 0 && len(r.Output) == 0 && len(r.Parser) == 0
}

// Results returns every result in the report in deterministic
// order: micro, output, parser, each sorted by name.
func (r Report) Results() []Result {
	var all []Result
	for _, m := range []map[string]Result{r.Micro, r.Output, r.Parser} {
		for _, name := range sortedNames(m) {
			all = append(all, m[name])
		}
	}
	return all
}

// Status returns the worst outcome present in the report.
func (r Report) Status() StatusText {
	status := StatusUnknown
	for _, res := range r.Results() {
		if res.Status().PriorityOver(status) {
			status = res.Status()
		}
	}
	return status
}

// Validate checks every result in the report.
func (r Report) Validate() error {
	for _, res := range r.Results() {
		if err := res.Validate(); err != nil {
			return err
		}
	}
	return nil
}
