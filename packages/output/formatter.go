package output

import (
	"io"
	"strings"

	"github.com/abdul-hamid-achik/respvars/packages/hook"
	"github.com/abdul-hamid-achik/respvars/packages/store"
)

// Formatter interface for all output formatters
type Formatter interface {
	FormatResult(result *hook.Result, entries []store.Entry)
	FormatEntries(entries []store.Entry)
	FormatError(err error)
	FormatHeader(version string)
}

// New returns the formatter for a format name, defaulting to console.
func New(format string, w io.Writer, verbose, noColor bool) Formatter {
	if strings.EqualFold(format, "json") {
		return NewJSONFormatterWithWriter(w)
	}
	return NewConsoleFormatter(WithWriter(w), WithVerbose(verbose), WithNoColor(noColor))
}
