// Package app assembles the Play Beat managers around one store.
//
// New loads the catalog and playlist before anything is served, picks the
// player, cue and notifier collaborators once, and hands back an App that the
// daemon, the IPC service and direct CLI access share. Close stops playback
// and releases the store.
package app
