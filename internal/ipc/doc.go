// Package ipc carries daemon control between the CLI and the daemon as
// JSON-RPC over a Unix domain socket. The request/response types here are
// the wire contract; keep them free of internal runtime state.
package ipc
