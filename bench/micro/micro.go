// Package micro implements the microbenchmark kind: a single
// expression evaluated repeatedly by the external evaluator.
package micro

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/evalbench/evalbench/bench"
	"github.com/evalbench/evalbench/evaluator"
	"github.com/evalbench/evalbench/types"
)

// Type should match the registry name
const Type = types.KindMicro

// Benchmark times the evaluation of a single expression.
type Benchmark struct {
	// Name is the name of the benchmark.
	Name string `json:"name"`

	// Expression is the expression handed to the evaluator.
	Expression string `json:"expression"`

	// Iterations is how many timed samples to take.
	Iterations int `json:"iterations,omitempty"`

	// IterationTime is the duration budget of one iteration. The
	// repetition count is calibrated so one iteration roughly
	// fills it, and a mean above it marks the result over
	// budget. Leave 0 to time single invocations with no budget
	// check.
	IterationTime time.Duration `json:"iteration_time,omitempty"`

	// Verbose records the individual iteration samples in the
	// result.
	Verbose bool `json:"verbose,omitempty"`
}

// New creates a new Benchmark instance based on json config
func New(config json.RawMessage) (Benchmark, error) {
	var b Benchmark
	err := json.Unmarshal(config, &b)
	if err == nil && b.Expression == "" {
		err = fmt.Errorf("missing expression")
	}
	return b, err
}

// Kind returns the benchmark registry name
func (Benchmark) Kind() string {
	return Type
}

// Title returns the configured benchmark name.
func (b Benchmark) Title() string {
	return b.Name
}

// Run measures b against ev. An error is only returned if there
// is a configuration error; evaluator failures are recorded in
// the result.
func (b Benchmark) Run(ev evaluator.Evaluator) (types.Result, error) {
	if ev == nil {
		return types.Result{}, fmt.Errorf("microbenchmark %s: no evaluator", b.Name)
	}
	if b.Iterations < 1 {
		b.Iterations = bench.DefaultIterations
	}

	result := types.NewResult()
	result.Name = b.Name
	result.Kind = Type
	result.Subject = b.Expression
	result.Iterations = b.Iterations
	result.IterationTime = b.IterationTime

	op := func(ctx context.Context) error {
		return ev.Evaluate(ctx, b.Expression)
	}

	reps, err := bench.Calibrate(op, b.IterationTime)
	if err != nil {
		result.Failed = true
		result.Message = err.Error()
		return result, nil
	}
	result.Repetitions = reps

	samples, err := bench.Measure(op, b.Iterations, reps)
	if err != nil {
		result.Failed = true
		result.Message = err.Error()
		return result, nil
	}
	result.Samples = samples

	return conclude(b, result), nil
}

// conclude computes the statistics from the samples, strips them
// unless the benchmark ran verbose, and makes the conclusion
// about the result's status.
func conclude(b Benchmark, result types.Result) types.Result {
	result.Stats = result.ComputeStats()
	if !b.Verbose {
		result.Samples = nil
	}

	if b.IterationTime > 0 && result.Stats.Mean > b.IterationTime {
		result.Notice = fmt.Sprintf("mean iteration time exceeded budget (%s)", b.IterationTime)
		result.OverBudget = true
		return result
	}

	result.WithinBudget = true
	return result
}
