package micro

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/evalbench/evalbench/bench"
	"github.com/evalbench/evalbench/types"
)

func TestNew(t *testing.T) {
	b, err := New(json.RawMessage(`{"expression": "1 + 1", "iterations": 5}`))
	if err != nil {
		t.Fatalf("Didn't expect an error: %v", err)
	}
	if got, want := b.Expression, "1 + 1"; got != want {
		t.Errorf("Expected expression '%s', got: '%s'", want, got)
	}
	if got, want := b.Iterations, 5; got != want {
		t.Errorf("Expected %d iterations, got: %d", want, got)
	}

	if _, err := New(json.RawMessage(`{}`)); err == nil {
		t.Error("Expected an error for a missing expression, didn't get one")
	}
}

func TestRun(t *testing.T) {
	ev := &fakeEvaluator{delay: time.Millisecond}
	b := Benchmark{Name: "fib", Expression: "fib(20)", Iterations: 3}

	result, err := b.Run(ev)
	if err != nil {
		t.Fatalf("Didn't expect an error: %v", err)
	}
	if got, want := result.Name, "fib"; got != want {
		t.Errorf("Expected name '%s', got: '%s'", want, got)
	}
	if got, want := result.Kind, types.KindMicro; got != want {
		t.Errorf("Expected kind '%s', got: '%s'", want, got)
	}
	if got, want := result.Subject, "fib(20)"; got != want {
		t.Errorf("Expected subject '%s', got: '%s'", want, got)
	}
	if got, want := result.Iterations, 3; got != want {
		t.Errorf("Expected %d iterations, got: %d", want, got)
	}
	if got, want := result.Repetitions, 1; got != want {
		t.Errorf("Expected %d rep without a budget, got: %d", want, got)
	}
	if result.Samples != nil {
		t.Error("Expected samples to be stripped without verbose")
	}
	if result.Stats.Mean <= 0 {
		t.Errorf("Expected a positive mean, got: %v", result.Stats.Mean)
	}
	if got, want := result.Status(), types.StatusOK; got != want {
		t.Errorf("Expected status '%s' but got: '%s'", want, got)
	}
	if err := result.Validate(); err != nil {
		t.Errorf("Didn't expect a validation error: %v", err)
	}
	// One warmup plus iterations*reps measured invocations.
	if got, want := ev.calls, 4; got != want {
		t.Errorf("Expected %d evaluator invocations, got: %d", want, got)
	}
}

func TestRunVerbose(t *testing.T) {
	ev := &fakeEvaluator{}
	b := Benchmark{Name: "fib", Expression: "fib(20)", Iterations: 4, Verbose: true}

	result, err := b.Run(ev)
	if err != nil {
		t.Fatalf("Didn't expect an error: %v", err)
	}
	if got, want := len(result.Samples), 4; got != want {
		t.Errorf("Expected %d samples with verbose, got: %d", want, got)
	}
	if err := result.Validate(); err != nil {
		t.Errorf("Didn't expect a validation error: %v", err)
	}
}

func TestRunDefaultIterations(t *testing.T) {
	ev := &fakeEvaluator{}
	b := Benchmark{Name: "fib", Expression: "fib(20)"}

	result, err := b.Run(ev)
	if err != nil {
		t.Fatalf("Didn't expect an error: %v", err)
	}
	if got, want := result.Iterations, bench.DefaultIterations; got != want {
		t.Errorf("Expected the default %d iterations, got: %d", want, got)
	}
}

func TestRunOverBudget(t *testing.T) {
	ev := &fakeEvaluator{delay: time.Millisecond}
	b := Benchmark{Name: "fib", Expression: "fib(20)", Iterations: 2, IterationTime: time.Microsecond}

	result, err := b.Run(ev)
	if err != nil {
		t.Fatalf("Didn't expect an error: %v", err)
	}
	if got, want := result.Status(), types.StatusOverBudget; got != want {
		t.Errorf("Expected status '%s' but got: '%s'", want, got)
	}
	if result.Notice == "" {
		t.Error("Expected a notice about the exceeded budget")
	}
}

func TestRunFailure(t *testing.T) {
	ev := &fakeEvaluator{failAfter: 1}
	b := Benchmark{Name: "fib", Expression: "fib(20)", Iterations: 2}

	result, err := b.Run(ev)
	if err != nil {
		t.Fatalf("Didn't expect an error: %v", err)
	}
	if got, want := result.Status(), types.StatusFailed; got != want {
		t.Errorf("Expected status '%s' but got: '%s'", want, got)
	}
	if got, want := result.Message, "i'm an error"; got != want {
		t.Errorf("Expected message '%s', got: '%s'", want, got)
	}
}

func TestRunNoEvaluator(t *testing.T) {
	b := Benchmark{Name: "fib", Expression: "fib(20)"}
	if _, err := b.Run(nil); err == nil {
		t.Error("Expected an error without an evaluator, didn't get one")
	}
}

var errTest = errors.New("i'm an error")

type fakeEvaluator struct {
	delay     time.Duration
	failAfter int
	calls     int
}

func (e *fakeEvaluator) Evaluate(ctx context.Context, expression string) error {
	e.calls++
	if e.failAfter > 0 && e.calls >= e.failAfter {
		return errTest
	}
	if e.delay > 0 {
		time.Sleep(e.delay)
	}
	return nil
}

func (e *fakeEvaluator) Render(ctx context.Context, module string) error     { return nil }
func (e *fakeEvaluator) Parse(ctx context.Context, source, uri string) error { return nil }
func (e *fakeEvaluator) Version(ctx context.Context) (string, error)         { return "0.0.1", nil }
func (e *fakeEvaluator) Name() string                                        { return "fakeval" }
