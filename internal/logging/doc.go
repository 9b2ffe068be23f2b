// Package logging constructs slog loggers for notesift and provides small
// attribute helpers so call sites do not import log/slog directly.
package logging
