// Package media checks that catalog tracks have playable files under the
// media directory and that their embedded tags agree with the catalog.
package media
