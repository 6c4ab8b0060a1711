// Package evaluator defines the contract with the external
// configuration-language runtime that benchmarks delegate to,
// along with an implementation that shells out to its CLI.
package evaluator

import (
	"context"
)

// Evaluator runs operations on an external configuration-language
// runtime. Implementations surface the runtime's errors verbatim;
// the harness makes no attempt to interpret them.
type Evaluator interface {
	// Evaluate evaluates a single expression.
	Evaluate(ctx context.Context, expression string) error

	// Render evaluates a module reference and produces its
	// rendered output.
	Render(ctx context.Context, module string) error

	// Parse parses source text without evaluating it. The uri is
	// used for diagnostics only.
	Parse(ctx context.Context, source, uri string) error

	// Version reports the runtime's version string.
	Version(ctx context.Context) (string, error)

	// Name identifies the runtime, e.g. its command name.
	Name() string
}
