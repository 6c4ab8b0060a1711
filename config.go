package evalbench

import (
	"encoding/json"
	"fmt"

	"github.com/evalbench/evalbench/bench/micro"
	"github.com/evalbench/evalbench/bench/output"
	"github.com/evalbench/evalbench/bench/parser"
	"github.com/evalbench/evalbench/evaluator"
)

const (
	errUnknownStorageType  = "unknown storage provider: %s"
	errUnknownNotifierType = "unknown notifier: %s"
	errUnknownExporterType = "unknown exporter provider: %s"
)

// config is the on-disk shape of a Harness. Benchmark kinds are
// implied by their registry; storage, notifiers and exporters
// carry a discriminator field.
type config struct {
	Evaluator json.RawMessage            `json:"evaluator"`
	Micro     map[string]json.RawMessage `json:"microbenchmarks,omitempty"`
	Output    map[string]json.RawMessage `json:"output_benchmarks,omitempty"`
	Parser    map[string]json.RawMessage `json:"parser_benchmarks,omitempty"`
	Storage   json.RawMessage            `json:"storage,omitempty"`
	Notifiers []json.RawMessage          `json:"notifiers,omitempty"`
	Exporters []json.RawMessage          `json:"exporters,omitempty"`
}

type providerConfig struct {
	Provider string `json:"provider"`
}

type namedConfig struct {
	Name string `json:"name"`
}

// UnmarshalJSON decodes a full harness configuration.
func (h *Harness) UnmarshalJSON(b []byte) error {
	var cfg config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return err
	}

	if len(cfg.Evaluator) > 0 {
		cli, err := evaluator.New(cfg.Evaluator)
		if err != nil {
			return err
		}
		h.Evaluator = cli
	}

	for name, raw := range cfg.Micro {
		b, err := micro.New(raw)
		if err != nil {
			return fmt.Errorf("microbenchmark %s: %v", name, err)
		}
		b.Name = name
		if h.Micro == nil {
			h.Micro = make(map[string]Benchmark)
		}
		h.Micro[name] = b
	}
	for name, raw := range cfg.Output {
		b, err := output.New(raw)
		if err != nil {
			return fmt.Errorf("output benchmark %s: %v", name, err)
		}
		b.Name = name
		if h.Output == nil {
			h.Output = make(map[string]Benchmark)
		}
		h.Output[name] = b
	}
	for name, raw := range cfg.Parser {
		b, err := parser.New(raw)
		if err != nil {
			return fmt.Errorf("parser benchmark %s: %v", name, err)
		}
		b.Name = name
		if h.Parser == nil {
			h.Parser = make(map[string]Benchmark)
		}
		h.Parser[name] = b
	}

	if len(cfg.Storage) > 0 {
		var pc providerConfig
		if err := json.Unmarshal(cfg.Storage, &pc); err != nil {
			return err
		}
		storage, err := storageDecode(pc.Provider, cfg.Storage)
		if err != nil {
			return err
		}
		h.Storage = storage
	}

	for _, raw := range cfg.Notifiers {
		var nc namedConfig
		if err := json.Unmarshal(raw, &nc); err != nil {
			return err
		}
		notifier, err := notifierDecode(nc.Name, raw)
		if err != nil {
			return err
		}
		h.Notifiers = append(h.Notifiers, notifier)
	}

	for _, raw := range cfg.Exporters {
		var pc providerConfig
		if err := json.Unmarshal(raw, &pc); err != nil {
			return err
		}
		exporter, err := exporterDecode(pc.Provider, raw)
		if err != nil {
			return err
		}
		h.Exporters = append(h.Exporters, exporter)
	}

	return nil
}

var _ json.Unmarshaler = (*Harness)(nil)
