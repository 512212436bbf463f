// Package preflight provides readiness checks for the directories, binaries
// and outbound services Play Beat depends on.
//
// These checks run in two contexts:
//   - The daemon logs a RunAll snapshot at startup so misconfiguration shows
//     up before the first request.
//   - The CLI "playbeat status" command renders the same results next to the
//     daemon state.
//
// Each check is gated by its config toggle -- unconfigured features are skipped.
package preflight
