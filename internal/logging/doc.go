// Package logging provides structured logging for the nova CLI built on
// log/slog.
//
// The package offers a TTY-optimized text handler with colorized output,
// a JSON handler for machine consumption, and a multi-handler for writing
// to several destinations (e.g., stderr plus a log file) at once.
//
// Loggers are passed through context: commands store the configured logger
// with [NewContext] and core packages retrieve it with [FromContext].
// Core operations log degraded-state conditions (for example a marketplace
// configured without matching installation state) as warnings rather than
// failing.
//
// Use [ForTest] in tests to route log output through testing.T.
package logging
