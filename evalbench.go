// Package evalbench provides means for benchmarking an external
// configuration-language evaluator: declaratively configured
// benchmarks are delegated to the evaluator, timed, and the
// aggregated report stored, rendered, and pushed to notifiers.
package evalbench

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/evalbench/evalbench/evaluator"
	"github.com/evalbench/evalbench/types"
)

// Evaluator is an alias so callers configuring a Harness in code
// don't need the subpackage import.
type Evaluator = evaluator.Evaluator

// Harness runs a configured set of benchmarks against an
// external evaluator.
type Harness struct {
	// Evaluator is the external runtime the benchmarks delegate
	// to. Required if calling Run().
	Evaluator Evaluator

	// Micro, Output and Parser are the three benchmark
	// registries, keyed by benchmark name.
	Micro  map[string]Benchmark
	Output map[string]Benchmark
	Parser map[string]Benchmark

	// Storage is the storage mechanism for saving reports.
	// Required if calling Store().
	Storage Storage

	// Notifiers are called after a stored run to surface
	// regressions.
	Notifiers []Notifier

	// Exporters are called after a stored run to ship report
	// data elsewhere.
	Exporters []Exporter

	// Timestamp is the timestamp to force for the run. Useful if
	// comparing reports from several machines that should appear
	// to be "at the same time" even if they are a few seconds
	// apart.
	Timestamp time.Time

	// OnResult, if set, is called with each result as it is
	// produced. Benchmarks run sequentially, so the callback
	// never runs concurrently with itself.
	OnResult func(types.Result)
}

// Run executes the configured benchmarks sequentially, in
// deterministic order, and assembles the report. An error is
// only returned in the case of a misconfiguration or if any one
// of the benchmarks returns an error.
func (h Harness) Run() (types.Report, error) {
	if h.Evaluator == nil {
		return types.Report{}, fmt.Errorf("no evaluator configured")
	}

	report := types.NewReport()
	report.Platform.Evaluator = h.Evaluator.Name()
	if version, err := h.Evaluator.Version(context.Background()); err == nil {
		report.Platform.EvaluatorVersion = version
	}
	if !h.Timestamp.IsZero() {
		report.Timestamp = h.Timestamp.UTC().UnixNano()
	}

	var errs types.Errors
	for _, b := range h.Benchmarks() {
		result, err := b.Run(h.Evaluator)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !h.Timestamp.IsZero() {
			result.Timestamp = h.Timestamp.UTC().UnixNano()
		}
		report.Add(result)
		if h.OnResult != nil {
			h.OnResult(result)
		}
	}

	if !errs.Empty() {
		return report, errs
	}
	return report, nil
}

// Benchmarks returns every configured benchmark in the order Run
// executes them: micro, output, parser, each registry sorted by
// name.
func (h Harness) Benchmarks() []Benchmark {
	var all []Benchmark
	for _, registry := range []map[string]Benchmark{h.Micro, h.Output, h.Parser} {
		names := make([]string, 0, len(registry))
		for name := range registry {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			all = append(all, registry[name])
		}
	}
	return all
}

// RunAndStore runs the benchmarks and immediately stores the
// report if there were no errors. Notifiers and exporters are
// then fanned out concurrently, and the storage maintained.
// Benchmarks are not run if h.Storage is nil.
func (h Harness) RunAndStore() error {
	if h.Storage == nil {
		return fmt.Errorf("no storage mechanism defined")
	}
	report, err := h.Run()
	if err != nil {
		return err
	}
	if err := h.Storage.Store(report); err != nil {
		return err
	}

	g := new(errgroup.Group)
	for _, notifier := range h.Notifiers {
		notifier := notifier
		g.Go(func() error {
			return notifier.Notify(report)
		})
	}
	for _, exporter := range h.Exporters {
		exporter := exporter
		g.Go(func() error {
			return exporter.Export(report)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if maintainer, ok := h.Storage.(Maintainer); ok {
		return maintainer.Maintain()
	}
	return nil
}

// RunAndStoreEvery calls RunAndStore every interval. It returns
// the ticker that it's using so you can stop it when you don't
// want it to run anymore. This function does NOT block (it runs
// the ticker in a goroutine). Any errors are written to the
// standard logger. It would not be wise to set an interval lower
// than the time it takes to perform the runs.
func (h Harness) RunAndStoreEvery(interval time.Duration) *time.Ticker {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			if err := h.RunAndStore(); err != nil {
				log.Println(err)
			}
		}
	}()
	return ticker
}
