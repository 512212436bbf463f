package ipc

import "playbeat/internal/api"

// Empty is the request for calls without arguments.
type Empty struct{}

// StatusResponse mirrors the HTTP status payload.
type StatusResponse = api.Status

// ShutdownResponse acknowledges a shutdown request.
type ShutdownResponse struct {
	Accepted bool `json:"accepted"`
}

// TracksRequest filters the catalog.
type TracksRequest struct {
	Genre string `json:"genre"`
	Query string `json:"query"`
}

// TrackRequest names one catalog track.
type TrackRequest struct {
	ID int `json:"id"`
}

// RatingRequest reads or commits a rating.
type RatingRequest struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
	// Keyboard is the key that activated the star, if any.
	Keyboard string `json:"keyboard,omitempty"`
}

// RatingsResponse lists committed ratings.
type RatingsResponse struct {
	Ratings []api.Rating `json:"ratings"`
}

// ThemeRequest carries the caller's system colour scheme.
type ThemeRequest struct {
	System string `json:"system"`
}
