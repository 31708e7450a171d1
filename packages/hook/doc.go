// Package hook implements the variable saving response hook.
//
// The hook runs once per completed HTTP exchange. It reads the pending
// variable definitions from the store, evaluates each one against the
// response, saves every match under "variable-<name>" and removes the
// definitions so they never apply to a later response.
//
// Only a malformed definitions list or a failing store is reported as an
// error. Unparsable bodies, missing matches, unsupported paths and unknown
// attributes skip the affected definitions.
package hook
