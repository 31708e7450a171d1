package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abdul-hamid-achik/respvars/packages/hook"
	"github.com/abdul-hamid-achik/respvars/packages/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleResult = &hook.Result{
	RunID:       "run-1",
	Definitions: 2,
	Saved:       []string{"ticket"},
	Skipped:     []hook.Skip{{Variable: "missing", Reason: "no match at $.missing"}},
}

var sampleEntries = []store.Entry{
	{Key: "variable-other", Value: "untouched"},
	{Key: "variable-ticket", Value: "123"},
}

func TestConsoleFormatter_FormatResult(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithVerbose(true))

	f.FormatResult(sampleResult, sampleEntries)

	out := buf.String()
	assert.Contains(t, out, `ticket = "123"`)
	assert.Contains(t, out, "missing (no match at $.missing)")
	assert.Contains(t, out, "1 saved, 1 skipped")
	assert.NotContains(t, out, "untouched")
}

func TestConsoleFormatter_NoDefinitions(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatResult(&hook.Result{}, nil)
	assert.Contains(t, buf.String(), "No pending variable definitions")
}

func TestConsoleFormatter_FormatEntries(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatEntries([]store.Entry{{Key: "variable-empty", Value: nil}, {Key: "variable-obj", Value: map[string]any{"a": 1}}})
	assert.Equal(t, "variable-empty = null\nvariable-obj = {\"a\":1}\n", buf.String())

	buf.Reset()
	f.FormatEntries(nil)
	assert.Equal(t, "No entries\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := New("json", &buf, false, true)

	f.FormatResult(sampleResult, sampleEntries)

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, map[string]any{"ticket": "123"}, out.Saved)
	assert.Equal(t, []JSONSkip{{Variable: "missing", Reason: "no match at $.missing"}}, out.Skipped)

	buf.Reset()
	f.FormatError(errors.New("boom"))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "boom", out.Error)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, `"abc"`, formatValue("abc", 0))
	assert.Equal(t, `"abcd...`, formatValue("abcdefgh", 5))
	assert.Equal(t, "3", formatValue(float64(3), 10))
}
