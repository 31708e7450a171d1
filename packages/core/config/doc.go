// Package config handles configuration loading and management for respvars.
//
// It provides functionality for:
//   - Loading configuration from .respvars.config.json or .respvarsrc files
//   - Default configuration values
//   - Merging command-line overrides over file settings
package config
