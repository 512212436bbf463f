// Package player starts an external audio player process for catalog tracks.
package player
