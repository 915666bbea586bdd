// Package logging provides the slog logger factory and the standardized
// structured field keys used across the daemon and CLI. Console output uses a
// compact logfmt-style handler; JSON output suits log shippers.
package logging
