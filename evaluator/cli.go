package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout bounds a single evaluator invocation.
const DefaultTimeout = 10 * time.Second

// Placeholder marks where the operand (expression, module
// reference, or source file path) is substituted into an
// argument list.
const Placeholder = "{}"

// CLI is an Evaluator that invokes an external command. Each
// operation has its own argument template in which Placeholder
// is replaced by the operand.
type CLI struct {
	// Command is the evaluator program to run.
	Command string `json:"command"`

	// GlobalArgs are prepended to every invocation.
	GlobalArgs []string `json:"global_args,omitempty"`

	// EvalArgs is the argument template for evaluating a single
	// expression, e.g. ["eval", "-x", "{}", "dummy.cfg"].
	EvalArgs []string `json:"eval_args,omitempty"`

	// RenderArgs is the argument template for rendering a
	// module's output, e.g. ["eval", "{}"].
	RenderArgs []string `json:"render_args,omitempty"`

	// ParseArgs is the argument template for parsing a source
	// file without evaluating it. The placeholder receives the
	// path of a temporary file holding the source text.
	ParseArgs []string `json:"parse_args,omitempty"`

	// VersionArgs asks the evaluator for its version. Defaults
	// to ["--version"].
	VersionArgs []string `json:"version_args,omitempty"`

	// Timeout is the maximum duration of a single invocation.
	// Defaults to DefaultTimeout.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// New creates a new CLI evaluator based on json config.
func New(config json.RawMessage) (CLI, error) {
	var cli CLI
	err := json.Unmarshal(config, &cli)
	if err != nil {
		return cli, err
	}
	if cli.Command == "" {
		return cli, fmt.Errorf("evaluator: missing command")
	}
	if len(cli.VersionArgs) == 0 {
		cli.VersionArgs = []string{"--version"}
	}
	if cli.Timeout == 0 {
		cli.Timeout = DefaultTimeout
	}
	return cli, nil
}

// Name returns the evaluator's command name.
func (c CLI) Name() string {
	return filepath.Base(c.Command)
}

// Evaluate evaluates expression with the evaluator.
func (c CLI) Evaluate(ctx context.Context, expression string) error {
	if len(c.EvalArgs) == 0 {
		return fmt.Errorf("evaluator: no eval_args configured")
	}
	return c.run(ctx, expand(c.EvalArgs, expression))
}

// Render evaluates module and produces its rendered output.
func (c CLI) Render(ctx context.Context, module string) error {
	if len(c.RenderArgs) == 0 {
		return fmt.Errorf("evaluator: no render_args configured")
	}
	return c.run(ctx, expand(c.RenderArgs, module))
}

// Parse writes source to a temporary file and asks the evaluator
// to parse it. The file is named after the final element of uri
// so the evaluator's diagnostics stay readable.
func (c CLI) Parse(ctx context.Context, source, uri string) error {
	if len(c.ParseArgs) == 0 {
		return fmt.Errorf("evaluator: no parse_args configured")
	}

	base := path.Base(uri)
	if base == "." || base == "/" {
		base = "source"
	}
	dir, err := ioutil.TempDir("", "evalbench")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, base)
	if err := ioutil.WriteFile(file, []byte(source), 0600); err != nil {
		return err
	}

	return c.run(ctx, expand(c.ParseArgs, file))
}

// Version reports the first line of the evaluator's version
// output.
func (c CLI) Version(ctx context.Context) (string, error) {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// #nosec G204
	out, err := exec.CommandContext(ctx, c.Command, append(c.GlobalArgs, c.VersionArgs...)...).CombinedOutput()
	if err != nil {
		return "", commandError(err, out)
	}
	version := strings.TrimSpace(string(out))
	if i := strings.IndexByte(version, '\n'); i >= 0 {
		version = version[:i]
	}
	return version, nil
}

func (c CLI) run(ctx context.Context, args []string) error {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// #nosec G204
	command := exec.CommandContext(ctx, c.Command, append(append([]string{}, c.GlobalArgs...), args...)...)
	output, err := command.CombinedOutput()
	if err != nil {
		return commandError(err, output)
	}
	return nil
}

// expand substitutes operand for every Placeholder in the
// argument template.
func expand(template []string, operand string) []string {
	args := make([]string, len(template))
	for i, arg := range template {
		if arg == Placeholder {
			args[i] = operand
			continue
		}
		args[i] = strings.Replace(arg, Placeholder, operand, -1)
	}
	return args
}

func commandError(err error, output []byte) error {
	stringify := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "empty"
		}
		return s
	}
	return fmt.Errorf("Error: %s\nOutput: %s\n", err.Error(), stringify(string(output)))
}
