// Package api defines wire-format types and the shared service behind the
// HTTP, IPC and direct-access surfaces.
//
// # Key Types
//
// Track: catalog entry with duration text, genre label and current rating.
//
// TrackList: filtered and searched catalog plus the filter status line.
//
// Playlist: ordered ids, resolved entries, orphaned ids and now-playing text.
//
// Status: daemon runtime information including dependencies.
//
// # Service
//
// Service wraps an app.App and returns DTOs so every transport reports the
// same shapes. Unknown track ids surface as ErrUnknownTrack; invalid ratings
// as rating.ErrInvalidRating.
//
// # Design Notes
//
// DTOs use camelCase JSON tags for JavaScript consumers. Themes are exposed as
// lowercase strings.
package api
