// Package api is the operation surface shared by the daemon's transports:
// the JSON-RPC socket used by the CLI and the optional HTTP API. It wraps
// the store, the pricing engine, and the upload orchestrator behind one
// service so both transports expose identical behavior.
package api
