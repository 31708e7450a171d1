package output

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/respvars/packages/definition"
	"github.com/abdul-hamid-achik/respvars/packages/hook"
	"github.com/abdul-hamid-achik/respvars/packages/store"
)

// JSONOutput represents a hook run
type JSONOutput struct {
	RunID       string         `json:"runId,omitempty"`
	Definitions int            `json:"definitions"`
	Saved       map[string]any `json:"saved"`
	Skipped     []JSONSkip     `json:"skipped"`
	Error       string         `json:"error,omitempty"`
}

// JSONSkip represents a definition that produced no variable
type JSONSkip struct {
	Variable string `json:"variable"`
	Reason   string `json:"reason"`
}

type JSONFormatter struct {
	writer io.Writer
}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{writer: os.Stdout}
}

// NewJSONFormatterWithWriter creates a JSON formatter writing to w
func NewJSONFormatterWithWriter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

func (f *JSONFormatter) FormatResult(result *hook.Result, entries []store.Entry) {
	out := JSONOutput{
		RunID:       result.RunID,
		Definitions: result.Definitions,
		Saved:       make(map[string]any),
		Skipped:     make([]JSONSkip, 0, len(result.Skipped)),
	}

	saved := make(map[string]bool, len(result.Saved))
	for _, name := range result.Saved {
		saved[definition.VariableKey(name)] = true
	}
	for _, e := range entries {
		if saved[e.Key] {
			out.Saved[strings.TrimPrefix(e.Key, definition.VariablePrefix)] = e.Value
		}
	}
	for _, s := range result.Skipped {
		out.Skipped = append(out.Skipped, JSONSkip{Variable: s.Variable, Reason: s.Reason})
	}
	f.write(out)
}

func (f *JSONFormatter) FormatEntries(entries []store.Entry) {
	out := make(map[string]any, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	f.write(out)
}

func (f *JSONFormatter) FormatError(err error) {
	f.write(JSONOutput{Error: err.Error(), Saved: map[string]any{}, Skipped: []JSONSkip{}})
}

func (f *JSONFormatter) FormatHeader(string) {}

func (f *JSONFormatter) write(v any) {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(v)
}
