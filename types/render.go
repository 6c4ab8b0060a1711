package types

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
)

// Rendering formats understood by Report.Render. FormatText is
// the default: a canonical compact text block whose entries are
// always emitted in the same order.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

var errUnknownFormat = "unknown report format: %s"

// Render writes the report to w in the given format. An empty
// format renders the default compact text.
func (r Report) Render(w io.Writer, format string) error {
	switch format {
	case FormatText, "":
		return r.RenderText(w)
	case FormatTable:
		return r.renderTable(w)
	case FormatJSON:
		return r.renderJSON(w)
	default:
		return fmt.Errorf(errUnknownFormat, format)
	}
}

// RenderText writes the canonical compact text form of the
// report. Output is deterministic: kinds in fixed order, names
// sorted, one property per line.
func (r Report) RenderText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "platform = %q\n", r.Platform); err != nil {
		return err
	}

	sections := []struct {
		name    string
		results map[string]Result
	}{
		{"microbenchmarks", r.Micro},
		{"outputBenchmarks", r.Output},
		{"parserBenchmarks", r.Parser},
	}
	for _, section := range sections {
		if len(section.results) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s {\n", section.name)
		for _, name := range sortedNames(section.results) {
			res := section.results[name]
			fmt.Fprintf(w, "  %s {\n", res.Name)
			fmt.Fprintf(w, "    iterations = %d\n", res.Iterations)
			fmt.Fprintf(w, "    repetitions = %d\n", res.Repetitions)
			fmt.Fprintf(w, "    min = %q\n", res.Stats.Min)
			fmt.Fprintf(w, "    max = %q\n", res.Stats.Max)
			fmt.Fprintf(w, "    mean = %q\n", res.Stats.Mean)
			fmt.Fprintf(w, "    stdev = %q\n", res.Stats.Stdev)
			fmt.Fprintf(w, "    error = %q\n", res.Stats.Error)
			if len(res.Samples) > 0 {
				fmt.Fprint(w, "    samples {\n")
				for _, d := range res.Samples {
					fmt.Fprintf(w, "      %q\n", d)
				}
				fmt.Fprint(w, "    }\n")
			}
			if res.Failed {
				fmt.Fprintf(w, "    failed = %q\n", res.Message)
			}
			fmt.Fprint(w, "  }\n")
		}
		if _, err := fmt.Fprint(w, "}\n"); err != nil {
			return err
		}
	}
	return nil
}

func sortedNames(m map[string]Result) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r Report) renderTable(w io.Writer) error {
	fmt.Fprintf(w, "%s\n", r.Platform)

	table := tablewriter.NewWriter(w)
	table.Header("Kind", "Name", "Iters", "Reps", "Min", "Max", "Mean", "Stdev", "Error", "Status")
	for _, res := range r.Results() {
		err := table.Append(
			res.Kind,
			res.Name,
			fmt.Sprintf("%d", res.Iterations),
			fmt.Sprintf("%d", res.Repetitions),
			res.Stats.Min.String(),
			res.Stats.Max.String(),
			res.Stats.Mean.String(),
			res.Stats.Stdev.String(),
			res.Stats.Error.String(),
			string(res.Status()),
		)
		if err != nil {
			return err
		}
	}
	return table.Render()
}

func (r Report) renderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
