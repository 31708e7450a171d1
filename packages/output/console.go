package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/respvars/packages/definition"
	"github.com/abdul-hamid-achik/respvars/packages/hook"
	"github.com/abdul-hamid-achik/respvars/packages/store"
	"github.com/fatih/color"
)

// formatValue formats a value for display, truncating long values
func formatValue(v any, maxLen int) string {
	data, err := json.Marshal(v)
	str := string(data)
	if err != nil {
		str = fmt.Sprintf("%v", v)
	}
	if maxLen > 0 && len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatResult(result *hook.Result, entries []store.Entry) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if result.Definitions == 0 {
		fmt.Fprintf(f.writer, "%s\n", yellow("No pending variable definitions"))
		return
	}

	values := make(map[string]any, len(entries))
	for _, e := range entries {
		values[e.Key] = e.Value
	}

	for _, name := range result.Saved {
		fmt.Fprintf(f.writer, "  %s %s", green("✓"), name)
		if v, ok := values[definition.VariableKey(name)]; ok {
			fmt.Fprintf(f.writer, " = %s", formatValue(v, 80))
		}
		fmt.Fprintf(f.writer, "\n")
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(f.writer, "  %s %s", yellow("-"), s.Variable)
		if f.verbose {
			fmt.Fprintf(f.writer, " (%s)", s.Reason)
		}
		fmt.Fprintf(f.writer, "\n")
	}

	fmt.Fprintf(f.writer, "\n%s %d saved, %d skipped\n", bold("Variables:"), len(result.Saved), len(result.Skipped))
}

func (f *ConsoleFormatter) FormatEntries(entries []store.Entry) {
	cyan := color.New(color.FgCyan).SprintFunc()
	if len(entries) == 0 {
		fmt.Fprintf(f.writer, "No entries\n")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(f.writer, "%s = %s\n", cyan(e.Key), formatValue(e.Value, 0))
	}
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("respvars"), version)
}
