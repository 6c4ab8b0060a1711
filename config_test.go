package evalbench

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/evalbench/evalbench/bench/micro"
	"github.com/evalbench/evalbench/bench/output"
	"github.com/evalbench/evalbench/bench/parser"
	"github.com/evalbench/evalbench/evaluator"
)

func TestHarnessUnmarshalJSON(t *testing.T) {
	configJSON := []byte(`{
		"evaluator": {
			"command": "pkl",
			"eval_args": ["eval", "-x", "{}"],
			"render_args": ["eval", "{}"],
			"parse_args": ["eval", "--parse", "{}"]
		},
		"microbenchmarks": {
			"fib": {"expression": "fib(20)", "iterations": 5}
		},
		"output_benchmarks": {
			"render-config": {"module": "config.pkl"}
		},
		"parser_benchmarks": {
			"parse-config": {"source": "x = 1", "uri": "file:///config.pkl"}
		},
		"storage": {
			"provider": "fs",
			"dir": "/tmp/reports"
		},
		"notifiers": [
			{"name": "slack", "username": "evalbench", "channel": "#bench", "webhook": "https://example.com/hook"}
		]
	}`)

	var h Harness
	if err := json.Unmarshal(configJSON, &h); err != nil {
		t.Fatalf("Didn't expect an error: %v", err)
	}

	cli, ok := h.Evaluator.(evaluator.CLI)
	if !ok {
		t.Fatalf("Expected a CLI evaluator, got %T", h.Evaluator)
	}
	if got, want := cli.Name(), "pkl"; got != want {
		t.Errorf("Expected evaluator name '%s', got: '%s'", want, got)
	}
	if got, want := cli.Timeout, evaluator.DefaultTimeout; got != want {
		t.Errorf("Expected default timeout %v, got: %v", want, got)
	}

	mb, ok := h.Micro["fib"].(micro.Benchmark)
	if !ok {
		t.Fatalf("Expected a microbenchmark, got %T", h.Micro["fib"])
	}
	if got, want := mb.Name, "fib"; got != want {
		t.Errorf("Expected registry key as name '%s', got: '%s'", want, got)
	}
	if got, want := mb.Iterations, 5; got != want {
		t.Errorf("Expected %d iterations, got: %d", want, got)
	}

	ob, ok := h.Output["render-config"].(output.Benchmark)
	if !ok {
		t.Fatalf("Expected an output benchmark, got %T", h.Output["render-config"])
	}
	if got, want := ob.Module, "config.pkl"; got != want {
		t.Errorf("Expected module '%s', got: '%s'", want, got)
	}

	pb, ok := h.Parser["parse-config"].(parser.Benchmark)
	if !ok {
		t.Fatalf("Expected a parser benchmark, got %T", h.Parser["parse-config"])
	}
	if got, want := pb.URI, "file:///config.pkl"; got != want {
		t.Errorf("Expected uri '%s', got: '%s'", want, got)
	}

	if h.Storage == nil {
		t.Fatal("Expected storage to be configured")
	}
	if got, want := h.Storage.Type(), "fs"; got != want {
		t.Errorf("Expected storage type '%s', got: '%s'", want, got)
	}

	if got, want := len(h.Notifiers), 1; got != want {
		t.Fatalf("Expected %d notifier, got: %d", want, got)
	}
	if got, want := h.Notifiers[0].Type(), "slack"; got != want {
		t.Errorf("Expected notifier type '%s', got: '%s'", want, got)
	}
}

func TestHarnessUnmarshalJSONErrors(t *testing.T) {
	for i, test := range []struct {
		config string
		err    string
	}{
		{`{"storage": {"provider": "bogus"}}`, fmt.Sprintf(errUnknownStorageType, "bogus")},
		{`{"notifiers": [{"name": "bogus"}]}`, fmt.Sprintf(errUnknownNotifierType, "bogus")},
		{`{"exporters": [{"provider": "bogus"}]}`, fmt.Sprintf(errUnknownExporterType, "bogus")},
		{`{"evaluator": {}}`, "evaluator: missing command"},
		{`{"microbenchmarks": {"empty": {}}}`, "microbenchmark empty: missing expression"},
		{`{"output_benchmarks": {"empty": {}}}`, "output benchmark empty: missing module"},
		{`{"parser_benchmarks": {"empty": {}}}`, "parser benchmark empty: missing source"},
	} {
		var h Harness
		err := json.Unmarshal([]byte(test.config), &h)
		if err == nil {
			t.Errorf("Test %d: Expected an error, didn't get one", i)
			continue
		}
		if got, want := err.Error(), test.err; got != want {
			t.Errorf(`Test %d: Expected error "%s" but got: "%s"`, i, want, got)
		}
	}
}
