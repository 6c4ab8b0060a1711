package types

import (
	"testing"
	"time"
)

func TestComputeStats(t *testing.T) {
	s := Result{Samples: Samples{
		7 * time.Second,
		4 * time.Second,
		4 * time.Second,
		6 * time.Second,
		6 * time.Second,
		3 * time.Second,
	}}.ComputeStats()

	if got, want := s.Total, 30*time.Second; got != want {
		t.Errorf("Expected Total=%v, got %v", want, got)
	}
	if got, want := s.Mean, 5*time.Second; got != want {
		t.Errorf("Expected Mean=%v, got %v", want, got)
	}
	if got, want := s.Median, 5*time.Second; got != want {
		t.Errorf("Expected Median=%v, got %v", want, got)
	}
	if got, want := s.Min, 3*time.Second; got != want {
		t.Errorf("Expected Min=%v, got %v", want, got)
	}
	if got, want := s.Max, 7*time.Second; got != want {
		t.Errorf("Expected Max=%v, got %v", want, got)
	}
	// Sample standard deviation: sqrt(12s²/5), and its standard
	// error over six samples.
	if got, want := s.Stdev, time.Duration(1549193338); got != want {
		t.Errorf("Expected Stdev=%v, got %v", want, got)
	}
	if got, want := s.Error, time.Duration(632455532); got != want {
		t.Errorf("Expected Error=%v, got %v", want, got)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	if got, want := (Result{}).ComputeStats(), (Stats{}); got != want {
		t.Errorf("Expected zero stats without samples, got %+v", got)
	}
}

func TestComputeStatsSingle(t *testing.T) {
	s := Result{Samples: Samples{2 * time.Second}}.ComputeStats()
	if got, want := s.Median, 2*time.Second; got != want {
		t.Errorf("Expected Median=%v, got %v", want, got)
	}
	if got, want := s.Stdev, time.Duration(0); got != want {
		t.Errorf("Expected Stdev=%v for a single sample, got %v", want, got)
	}
}

func TestResultValidate(t *testing.T) {
	r := Result{Iterations: 2, Samples: Samples{time.Second, time.Second}}
	if err := r.Validate(); err != nil {
		t.Errorf("Didn't expect an error: %v", err)
	}

	r = Result{Iterations: 2}
	if err := r.Validate(); err != nil {
		t.Errorf("Didn't expect an error without samples: %v", err)
	}

	r = Result{Iterations: 3, Samples: Samples{time.Second}}
	if err := r.Validate(); err == nil {
		t.Error("Expected an error for a sample/iteration mismatch, didn't get one")
	}
}

func TestResultStatus(t *testing.T) {
	r := Result{WithinBudget: true}
	if got, want := r.Status(), StatusOK; got != want {
		t.Errorf("Expected status '%s' but got: '%s'", want, got)
	}

	r = Result{OverBudget: true}
	if got, want := r.Status(), StatusOverBudget; got != want {
		t.Errorf("Expected status '%s' but got: '%s'", want, got)
	}

	r = Result{Failed: true}
	if got, want := r.Status(), StatusFailed; got != want {
		t.Errorf("Expected status '%s' but got: '%s'", want, got)
	}

	r = Result{}
	if got, want := r.Status(), StatusUnknown; got != want {
		t.Errorf("Expected status '%s' but got: '%s'", want, got)
	}

	// These are invalid states, but we need to test anyway in case
	// a benchmark is buggy. We expect the worst of the enabled
	// fields.
	r = Result{Failed: true, OverBudget: true}
	if got, want := r.Status(), StatusFailed; got != want {
		t.Errorf("(INVALID RESULT CASE) Expected status '%s' but got: '%s'", want, got)
	}
	r = Result{OverBudget: true, WithinBudget: true}
	if got, want := r.Status(), StatusOverBudget; got != want {
		t.Errorf("(INVALID RESULT CASE) Expected status '%s' but got: '%s'", want, got)
	}
	r = Result{Failed: true, WithinBudget: true}
	if got, want := r.Status(), StatusFailed; got != want {
		t.Errorf("(INVALID RESULT CASE) Expected status '%s' but got: '%s'", want, got)
	}
}

func TestPriorityOver(t *testing.T) {
	for i, test := range []struct {
		status   StatusText
		another  StatusText
		expected bool
	}{
		{StatusFailed, StatusFailed, false},
		{StatusFailed, StatusOverBudget, true},
		{StatusFailed, StatusOK, true},
		{StatusFailed, StatusUnknown, true},
		{StatusOverBudget, StatusFailed, false},
		{StatusOverBudget, StatusOverBudget, false},
		{StatusOverBudget, StatusOK, true},
		{StatusOverBudget, StatusUnknown, true},
		{StatusOK, StatusFailed, false},
		{StatusOK, StatusOverBudget, false},
		{StatusOK, StatusOK, false},
		{StatusOK, StatusUnknown, true},
		{StatusUnknown, StatusFailed, false},
		{StatusUnknown, StatusOverBudget, false},
		{StatusUnknown, StatusOK, false},
		{StatusUnknown, StatusUnknown, false},
	} {
		actual := test.status.PriorityOver(test.another)
		if actual != test.expected {
			t.Errorf("Test %d: Expected %s.PriorityOver(%s)=%v, but got %v",
				i, test.status, test.another, test.expected, actual)
		}
	}
}
