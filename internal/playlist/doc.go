// Package playlist owns the user's ordered playlist and the remembered
// current track.
//
// Every mutation is written to the store before it becomes visible in memory,
// so a failed write leaves the previous state intact. Identifiers are checked
// only against playlist membership: ids that no longer resolve in the catalog
// stay stored and are skipped when entries are listed, until Prune removes them.
package playlist
