// Package config loads, normalizes, and validates the TOML configuration
// shared by the CLI and the daemon. Values from a .env file and the
// CALLSHEET_* environment variables overlay the file so secrets can stay out
// of version-controlled configs.
package config
