package evalbench

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/evalbench/evalbench/types"
)

func TestRunAndStore(t *testing.T) {
	f := new(fake)
	h := Harness{
		Evaluator: fakeEvaluator{},
		Micro:     map[string]Benchmark{"a": f, "b": f},
		Storage:   f,
		Notifiers: []Notifier{f},
		Exporters: []Exporter{f},
		Timestamp: time.Now(),
	}

	err := h.RunAndStore()
	if err != nil {
		t.Errorf("Didn't expect an error: %v", err)
	}
	if got, want := f.ran, 2; got != want {
		t.Errorf("Expected %d benchmarks to be executed, but had: %d", want, got)
	}
	if got, want := len(f.stored), 1; got != want {
		t.Fatalf("Expected %d report to be stored, but had: %d", want, got)
	}
	report := f.stored[0]
	if got, want := len(report.Micro), 2; got != want {
		t.Errorf("Expected %d results in the report, but had: %d", want, got)
	}
	if got, want := report.Timestamp, h.Timestamp.UTC().UnixNano(); got != want {
		t.Errorf("Expected the forced timestamp %d, got %d", want, got)
	}
	for _, result := range report.Results() {
		if got, want := result.Timestamp, report.Timestamp; got != want {
			t.Error("Expected result timestamps to match the report, but they didn't")
		}
	}
	if got, want := report.Platform.Evaluator, "fakeval"; got != want {
		t.Errorf("Expected evaluator '%s' on the platform, got: '%s'", want, got)
	}
	if got, want := report.Platform.EvaluatorVersion, "0.0.1"; got != want {
		t.Errorf("Expected evaluator version '%s' on the platform, got: '%s'", want, got)
	}
	if got, want := f.notified, 1; got != want {
		t.Errorf("Expected Notify() to be called %d time, called %d times", want, got)
	}
	if got, want := f.exported, 1; got != want {
		t.Errorf("Expected Export() to be called %d time, called %d times", want, got)
	}
	if got, want := f.maintained, 1; got != want {
		t.Errorf("Expected Maintain() to be called %d time, called %d times", want, got)
	}

	// Check error handling
	f.returnErr = true
	err = h.RunAndStore()
	if err == nil {
		t.Error("Expected an error, didn't get one")
	}
	if got, want := err.Error(), "i'm an error; i'm an error"; got != want {
		t.Errorf(`Expected error string "%s" but got: "%s"`, want, got)
	}

	h.Evaluator = nil
	_, err = h.Run()
	if err == nil {
		t.Error("Expected an error with no evaluator, didn't get one")
	}
	h.Evaluator = fakeEvaluator{}
	h.Storage = nil
	err = h.RunAndStore()
	if err == nil {
		t.Error("Expected an error with no storage, didn't get one")
	}
}

func TestRunAndStoreEvery(t *testing.T) {
	f := new(fake)
	h := Harness{
		Evaluator: fakeEvaluator{},
		Micro:     map[string]Benchmark{"a": f},
		Storage:   f,
	}

	ticker := h.RunAndStoreEvery(50 * time.Millisecond)
	time.Sleep(170 * time.Millisecond)
	ticker.Stop()

	if got, want := f.ran, 3; got != want {
		t.Errorf("Expected %d runs while sleeping, had: %d", want, got)
	}
}

func TestBenchmarksOrder(t *testing.T) {
	h := Harness{
		Micro: map[string]Benchmark{
			"zulu":  &fake{name: "zulu"},
			"alpha": &fake{name: "alpha"},
		},
		Output: map[string]Benchmark{
			"mike": &fake{kind: types.KindOutput, name: "mike"},
		},
		Parser: map[string]Benchmark{
			"bravo": &fake{kind: types.KindParser, name: "bravo"},
		},
	}

	var got []string
	for _, b := range h.Benchmarks() {
		got = append(got, b.Title())
	}
	want := []string{"alpha", "zulu", "mike", "bravo"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d benchmarks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected benchmark %d to be '%s', got '%s'", i, want[i], got[i])
		}
	}
}

func TestOnResult(t *testing.T) {
	f := new(fake)
	var seen int
	h := Harness{
		Evaluator: fakeEvaluator{},
		Micro:     map[string]Benchmark{"a": f, "b": f},
		OnResult:  func(types.Result) { seen++ },
	}

	if _, err := h.Run(); err != nil {
		t.Errorf("Didn't expect an error: %v", err)
	}
	if got, want := seen, 2; got != want {
		t.Errorf("Expected OnResult to be called %d times, called %d times", want, got)
	}
}

var errTest = errors.New("i'm an error")

type fake struct {
	kind       string
	name       string
	returnErr  bool
	ran        int
	stored     []types.Report
	maintained int
	notified   int
	exported   int
}

func (f *fake) Kind() string {
	if f.kind == "" {
		return types.KindMicro
	}
	return f.kind
}

func (f *fake) Title() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func (f *fake) Run(ev Evaluator) (types.Result, error) {
	f.ran++
	r := types.NewResult()
	r.Name = fmt.Sprintf("bench-%d", f.ran)
	r.Kind = f.Kind()
	r.WithinBudget = true
	if f.returnErr {
		return r, errTest
	}
	return r, nil
}

func (f *fake) Type() string {
	return "fake"
}

func (f *fake) Store(report types.Report) error {
	f.stored = append(f.stored, report)
	if f.returnErr {
		return errTest
	}
	return nil
}

func (f *fake) Maintain() error {
	f.maintained++
	return nil
}

func (f *fake) Notify(types.Report) error {
	f.notified++
	return nil
}

func (f *fake) Export(types.Report) error {
	f.exported++
	return nil
}

type fakeEvaluator struct{}

func (fakeEvaluator) Evaluate(ctx context.Context, expression string) error { return nil }
func (fakeEvaluator) Render(ctx context.Context, module string) error       { return nil }
func (fakeEvaluator) Parse(ctx context.Context, source, uri string) error   { return nil }
func (fakeEvaluator) Version(ctx context.Context) (string, error)           { return "0.0.1", nil }
func (fakeEvaluator) Name() string                                          { return "fakeval" }
