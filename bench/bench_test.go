package bench

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTest = errors.New("i'm an error")

func TestCalibrate(t *testing.T) {
	op := func(ctx context.Context) error {
		time.Sleep(time.Millisecond)
		return nil
	}

	// Without a budget every iteration times a single invocation.
	reps, err := Calibrate(op, 0)
	if err != nil {
		t.Errorf("Didn't expect an error: %v", err)
	}
	if got, want := reps, 1; got != want {
		t.Errorf("Expected %d rep without a budget, got %d", want, got)
	}

	// With a budget several invocations should fit.
	reps, err = Calibrate(op, 20*time.Millisecond)
	if err != nil {
		t.Errorf("Didn't expect an error: %v", err)
	}
	if reps < 2 {
		t.Errorf("Expected several reps to fit the budget, got %d", reps)
	}

	// A budget smaller than one invocation still yields one rep.
	reps, err = Calibrate(op, time.Nanosecond)
	if err != nil {
		t.Errorf("Didn't expect an error: %v", err)
	}
	if got, want := reps, 1; got != want {
		t.Errorf("Expected %d rep for a tiny budget, got %d", want, got)
	}
}

func TestCalibrateError(t *testing.T) {
	op := func(ctx context.Context) error { return errTest }
	if _, err := Calibrate(op, 0); err != errTest {
		t.Errorf("Expected the warmup error, got: %v", err)
	}
}

func TestMeasure(t *testing.T) {
	var calls int
	op := func(ctx context.Context) error {
		calls++
		return nil
	}

	samples, err := Measure(op, 5, 3)
	if err != nil {
		t.Errorf("Didn't expect an error: %v", err)
	}
	if got, want := len(samples), 5; got != want {
		t.Errorf("Expected %d samples, got %d", want, got)
	}
	if got, want := calls, 15; got != want {
		t.Errorf("Expected %d invocations, got %d", want, got)
	}
}

func TestMeasureError(t *testing.T) {
	var calls int
	op := func(ctx context.Context) error {
		calls++
		if calls == 4 {
			return errTest
		}
		return nil
	}

	samples, err := Measure(op, 5, 3)
	if err != errTest {
		t.Errorf("Expected the op error, got: %v", err)
	}
	if samples != nil {
		t.Errorf("Expected no samples on failure, got %d", len(samples))
	}
	if got, want := calls, 4; got != want {
		t.Errorf("Expected measuring to stop at the failure, made %d calls", got)
	}
}
