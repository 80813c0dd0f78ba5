// Package config loads, normalizes, and validates sharecut configuration.
//
// Settings come from built-in defaults, an optional TOML file
// (~/.config/sharecut/config.toml, then ./sharecut.toml), and SHARECUT_*
// environment overrides, in that order. Command-line flags are applied on
// top by the CLI. Validation failures carry services.ErrConfiguration so the
// CLI reports them with a usage exit status.
package config
