// Package config loads, normalizes, and validates smudge configuration.
//
// Configuration comes from a TOML file (explicit --config path, then
// ~/.config/smudge/config.toml, then ./smudge.toml) layered over built-in
// defaults. Paths are expanded and made absolute during normalization so the
// rest of the system never sees "~" or relative directories.
package config
