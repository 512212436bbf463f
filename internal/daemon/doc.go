// Package daemon coordinates the long-running Play Beat process.
//
// It wires the app state and the HTTP site into a single lifecycle with
// flock-based locking so only one daemon serves a data directory. The daemon
// reports runtime status, exposes the shared api.Service to the IPC layer and
// accepts shutdown requests from the CLI.
//
// Keep orchestration logic here: page and API behaviour lives in
// internal/site while the daemon focuses on startup, shutdown and status.
package daemon
