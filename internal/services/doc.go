// Package services defines shared utilities consumed by the upload
// orchestrator, the persistence layer, and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp upload job IDs, operation names, and
//     correlation identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper so failures classify
//     consistently (caller error vs transient collaborator failure).
//
// Use these helpers when wiring new daemon logic so operational behaviour
// (error handling, observability) stays uniform across components.
package services
