// Package pricing computes deliverable and shoot-day costs from structured
// inputs and a rate table snapshot. All functions are pure: the caller loads
// the current rates before invoking them, and identical inputs always produce
// identical results. Missing rate keys price at 0 rather than failing.
package pricing
