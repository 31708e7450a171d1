// Package http provides the HTTP client used by the fetch command.
//
// It wraps the standard library's http package with:
//   - Configurable timeouts
//   - Redirect handling
//   - Default headers and proxy support
//   - Response body reading and a hook accessor for the result
package http
