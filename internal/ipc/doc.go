// Package ipc exposes the daemon over JSON-RPC Unix sockets and ships the
// matching client used by the CLI.
//
// It owns socket lifecycle management and the request/response DTOs. The
// server delegates every call to the daemon's api.Service, so IPC callers see
// the same shapes as HTTP clients. The client restores well-known sentinel
// errors (unknown track, invalid rating) from their RPC string form so callers
// can keep matching with errors.Is.
//
// Reuse these types when adding new RPC endpoints to keep the protocol stable
// and compatible with existing command implementations.
package ipc
