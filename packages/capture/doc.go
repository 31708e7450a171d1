// Package capture extracts values from HTTP responses for variable definitions.
//
// It supports capturing values from:
//   - Response body (JSONPath expressions)
//
// Definitions naming any other attribute are reported with
// ErrUnknownAttribute so callers can skip them.
package capture
