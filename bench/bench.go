// Package bench provides the measurement loop shared by the
// benchmark kinds. The actual work being timed is always an
// operation delegated to an external evaluator.
package bench

import (
	"context"
	"time"

	"github.com/evalbench/evalbench/types"
)

// DefaultIterations is how many timed samples a benchmark takes
// when its configuration doesn't say otherwise.
const DefaultIterations = 20

// An Op is a single evaluator invocation.
type Op func(ctx context.Context) error

// Calibrate performs one warmup invocation and returns how many
// invocations fit into the per-iteration budget. With no budget
// each iteration times a single invocation. The warmup also
// surfaces evaluator failures before any samples are taken.
func Calibrate(op Op, budget time.Duration) (int, error) {
	start := time.Now()
	if err := op(context.Background()); err != nil {
		return 0, err
	}
	warmup := time.Since(start)

	if budget <= 0 {
		return 1, nil
	}
	if warmup <= 0 {
		warmup = time.Nanosecond
	}
	reps := int(budget / warmup)
	if reps < 1 {
		reps = 1
	}
	return reps, nil
}

// Measure takes iterations samples, each averaging the wall time
// of reps invocations. It stops at the first evaluator failure.
func Measure(op Op, iterations, reps int) (types.Samples, error) {
	samples := make(types.Samples, iterations)
	for i := 0; i < iterations; i++ {
		start := time.Now()
		for j := 0; j < reps; j++ {
			if err := op(context.Background()); err != nil {
				return nil, err
			}
		}
		samples[i] = time.Since(start) / time.Duration(reps)
	}
	return samples, nil
}
