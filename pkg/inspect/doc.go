// Package inspect serves a debug view of frame snapshots over HTTP.
//
// The inspector renders the nested tree implied by subtree lengths, exposes
// the raw frames as JSON, publishes Prometheus metrics, and pushes reload
// notifications over a WebSocket when the watched snapshot changes. It is a
// development tool; it binds to localhost and performs no authentication.
package inspect
