package api

import (
	"playbeat/internal/catalog"
	"playbeat/internal/contact"
	"playbeat/internal/deps"
	"playbeat/internal/rating"
	"playbeat/internal/theme"
)

// FromTrack converts a catalog track. rated is the committed rating, 0 when
// unrated.
func FromTrack(track catalog.Track, rated int, inPlaylist bool) Track {
	return Track{
		ID:           track.ID,
		Title:        track.Title,
		Artist:       track.Artist,
		Genre:        track.Genre,
		GenreLabel:   track.GenreLabel(),
		Duration:     track.Duration,
		DurationText: catalog.FormatDuration(track.Duration),
		URL:          track.URL,
		Label:        track.Label(),
		Rating:       rated,
		Stars:        rating.RenderValue(rated),
		InPlaylist:   inPlaylist,
	}
}

// FromTheme converts a theme presentation.
func FromTheme(p theme.Presentation) Theme {
	return Theme{
		Theme:     string(p.Theme),
		BodyClass: p.BodyClass,
		Label:     p.Label,
		AriaLabel: p.AriaLabel,
		Pressed:   p.Pressed,
	}
}

// FromOutcome converts a contact submission outcome.
func FromOutcome(o contact.Outcome) ContactResponse {
	return ContactResponse{
		Status: o.Status,
		Sent:   o.Sent,
		Form: ContactRequest{
			Name:    o.Form.Name,
			Email:   o.Form.Email,
			Message: o.Form.Message,
		},
		ID: o.ID,
	}
}

// FromDependencies converts dependency checks.
func FromDependencies(statuses []deps.Status) []DependencyStatus {
	out := make([]DependencyStatus, len(statuses))
	for i, dep := range statuses {
		out[i] = DependencyStatus{
			Name:        dep.Name,
			Command:     dep.Command,
			Description: dep.Description,
			Optional:    dep.Optional,
			Available:   dep.Available,
			Detail:      dep.Detail,
		}
	}
	return out
}
