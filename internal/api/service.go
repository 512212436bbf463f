package api

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"playbeat/internal/app"
	"playbeat/internal/catalog"
	"playbeat/internal/contact"
	"playbeat/internal/logging"
	"playbeat/internal/rating"
	"playbeat/internal/theme"
)

// ErrUnknownTrack reports a track id missing from the catalog.
var ErrUnknownTrack = errors.New("unknown track")

// TargetQuote is the page region bumped when a quote loads.
const TargetQuote = "quote"

// Service exposes site operations returning API DTOs.
type Service struct {
	app *app.App
}

// NewService constructs a Service around a.
func NewService(a *app.App) *Service {
	if a == nil {
		return nil
	}
	return &Service{app: a}
}

// App returns the wrapped app.
func (s *Service) App() *app.App {
	return s.app
}

func (s *Service) ratings(ctx context.Context) map[string]int {
	all, err := s.app.Ratings.All(ctx)
	if err != nil {
		logging.WithContext(ctx, s.app.Logger).Debug("ratings unavailable", logging.Error(err))
		return map[string]int{}
	}
	return all
}

func (s *Service) convert(ctx context.Context, tracks []catalog.Track) []Track {
	rated := s.ratings(ctx)
	out := make([]Track, len(tracks))
	for i, track := range tracks {
		out[i] = FromTrack(track, rated[rating.TrackKey(track.ID)], s.app.Playlist.Contains(track.ID))
	}
	return out
}

// Tracks filters the catalog by genre, then by query.
func (s *Service) Tracks(ctx context.Context, genre, query string) TrackList {
	tracks := catalog.Search(catalog.Filter(s.app.Catalog.Tracks(), genre), query)
	return TrackList{
		Genre:  catalog.NormalizeGenre(genre),
		Status: catalog.FilterStatus(genre),
		Query:  strings.TrimSpace(query),
		Tracks: s.convert(ctx, tracks),
	}
}

// Playlist returns the playlist view. Orphaned ids are listed but not rendered.
func (s *Service) Playlist(ctx context.Context) Playlist {
	pl := s.app.Playlist
	view := Playlist{
		IDs:        pl.IDs(),
		Entries:    s.convert(ctx, pl.Entries()),
		Orphans:    pl.Orphans(),
		NowPlaying: pl.NowPlaying(),
	}
	if id, ok := pl.Current(); ok {
		view.CurrentID = &id
	}
	return view
}

// AddToPlaylist appends id when it is a catalog track not yet listed.
func (s *Service) AddToPlaylist(ctx context.Context, id int) (PlaylistChange, error) {
	if _, ok := s.app.Catalog.Find(id); !ok {
		return PlaylistChange{}, fmt.Errorf("%w: %d", ErrUnknownTrack, id)
	}
	changed, err := s.app.Playlist.Add(ctx, id)
	if err != nil {
		return PlaylistChange{}, err
	}
	return PlaylistChange{Changed: changed, Playlist: s.Playlist(ctx)}, nil
}

// RemoveFromPlaylist drops id. Absent ids are not an error.
func (s *Service) RemoveFromPlaylist(ctx context.Context, id int) (Playlist, error) {
	if err := s.app.Playlist.Remove(ctx, id); err != nil {
		return Playlist{}, err
	}
	return s.Playlist(ctx), nil
}

// ClearPlaylist empties the playlist.
func (s *Service) ClearPlaylist(ctx context.Context) (Playlist, error) {
	if err := s.app.Playlist.Clear(ctx); err != nil {
		return Playlist{}, err
	}
	return s.Playlist(ctx), nil
}

// PrunePlaylist purges ids that no longer resolve to catalog tracks.
func (s *Service) PrunePlaylist(ctx context.Context) (PruneResult, error) {
	removed, err := s.app.Playlist.Prune(ctx)
	if err != nil {
		return PruneResult{}, err
	}
	if removed == nil {
		removed = []int{}
	}
	return PruneResult{Removed: removed, Playlist: s.Playlist(ctx)}, nil
}

// Play starts playback of id.
func (s *Service) Play(ctx context.Context, id int) (PlayResult, error) {
	track, ok, err := s.app.Playlist.Play(ctx, id)
	if err != nil {
		return PlayResult{}, err
	}
	if !ok {
		return PlayResult{}, fmt.Errorf("%w: %d", ErrUnknownTrack, id)
	}
	rated := s.ratings(ctx)[rating.TrackKey(id)]
	return PlayResult{
		Track:      FromTrack(track, rated, s.app.Playlist.Contains(id)),
		NowPlaying: s.app.Playlist.NowPlaying(),
	}, nil
}

// Rating returns the committed rating for key.
func (s *Service) Rating(ctx context.Context, key string) Rating {
	w := s.app.Ratings.Widget(ctx, key)
	return Rating{Key: w.Key(), Value: w.Value(), Stars: w.Render()}
}

// Rate commits req for key. A keyboard key other than Enter or Space leaves
// the rating unchanged.
func (s *Service) Rate(ctx context.Context, key string, req RatingRequest) (Rating, error) {
	w := s.app.Ratings.Widget(ctx, key)
	var err error
	if req.Key != "" {
		if verr := rating.Validate(req.Value); verr != nil {
			return Rating{}, verr
		}
		err = w.KeyDown(ctx, req.Value, req.Key)
	} else {
		err = w.Click(ctx, req.Value)
	}
	if err != nil {
		return Rating{}, err
	}
	return Rating{Key: w.Key(), Value: w.Value(), Stars: w.Render()}, nil
}

// Ratings lists every committed rating.
func (s *Service) Ratings(ctx context.Context) ([]Rating, error) {
	all, err := s.app.Ratings.All(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	out := make([]Rating, len(keys))
	for i, key := range keys {
		out[i] = Rating{Key: key, Value: all[key], Stars: rating.RenderValue(all[key])}
	}
	return out, nil
}

// Theme returns the applied theme given the client's system preference.
func (s *Service) Theme(ctx context.Context, system theme.Theme) Theme {
	return FromTheme(theme.Present(s.app.Theme.Current(ctx, system)))
}

// ToggleTheme flips and persists the theme.
func (s *Service) ToggleTheme(ctx context.Context, system theme.Theme) (Theme, error) {
	next, err := s.app.Theme.Toggle(ctx, system)
	if err != nil {
		return Theme{}, err
	}
	return FromTheme(theme.Present(next)), nil
}

// Quote loads a random quote, bumps the quote region and cues.
func (s *Service) Quote(ctx context.Context) (Quote, error) {
	q, err := s.app.Remote.RandomQuote(ctx)
	if err != nil {
		return Quote{}, fmt.Errorf("load quote: %w", err)
	}
	s.app.Cue.Cue(ctx, TargetQuote)
	return Quote{Text: q.Text}, nil
}

// Contact submits the contact form.
func (s *Service) Contact(ctx context.Context, req ContactRequest) ContactResponse {
	outcome := s.app.Contact.Submit(ctx, contact.Form{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	return FromOutcome(outcome)
}

// Status reports store and playlist state. Daemon fields are left to callers.
func (s *Service) Status(ctx context.Context) Status {
	pl := s.app.Playlist
	status := Status{
		StorePath:      s.app.StorePath(),
		SocketPath:     s.app.Config.SocketPath(),
		LockPath:       s.app.Config.LockPath(),
		Tracks:         s.app.Catalog.Len(),
		PlaylistLength: len(pl.IDs()),
		Orphans:        len(pl.Orphans()),
		NowPlaying:     pl.NowPlaying(),
		Theme:          string(s.app.Theme.Current(ctx, theme.SystemPreference())),
		Ratings:        len(s.ratings(ctx)),
		Dependencies:   FromDependencies(s.app.Dependencies()),
	}
	if id, ok := pl.Current(); ok {
		status.CurrentID = &id
	}
	return status
}
