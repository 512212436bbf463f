// Package access gives CLI commands one interface over the site state,
// whether a daemon is reachable over IPC or the store must be opened
// directly.
package access
