// Package cmd implements the respvars CLI commands using Cobra.
//
// Available commands:
//   - define: Queue variable definitions for the next response
//   - apply: Run the variable saving hook on a response body file or stdin
//   - fetch: Perform an HTTP request and run the hook on its response
//   - vars: Show saved variables
//   - clear: Remove every entry from the store
//   - validate: Check definitions files without queuing them
//   - init: Create a config file and an example definitions file
//   - version: Show respvars version information
//
// Every command shares the --store, --config and logging flags; their
// defaults come from RESPVARS_* environment variables.
package cmd
