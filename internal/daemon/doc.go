// Package daemon hosts the long-running callsheet process: it owns the
// store, the upload orchestrator and its storage backend, and the optional
// HTTP API, and it enforces single-instance execution through a lock file.
// The JSON-RPC control socket is wired around it by daemonrun.
package daemon
