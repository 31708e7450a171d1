// Package output provides formatters for displaying hook results and store
// contents.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable JSON output
package output
