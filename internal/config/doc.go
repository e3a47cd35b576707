// Package config loads, normalizes, and validates afptool configuration.
//
// It supplies repository defaults, expands tilde paths, and reads TOML files
// from ~/.config/afptool/config.toml or an explicit --config path. A missing
// file is not an error; defaults apply.
package config
