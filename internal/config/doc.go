// Package config loads, normalizes, and validates notesift configuration.
//
// Configuration comes from a TOML file resolved in this order: an explicit
// --config path, ~/.config/notesift/config.toml, then a notesift.toml in the
// working directory. Missing files fall back to defaults so the tool works
// out of the box against a local backend.
package config
