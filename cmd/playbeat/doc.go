// Package main hosts the playbeat CLI entrypoint and command graph.
//
// The Cobra-based command tree serves the site (serve/start/stop), and
// exposes the same catalog, playlist, rating, theme, quote and contact
// operations the page offers. Commands talk to a running daemon over IPC and
// fall back to opening the store directly when none answers, so the CLI
// stays useful with the daemon stopped.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
