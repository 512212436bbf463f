package api_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"playbeat/internal/api"
	"playbeat/internal/app"
	"playbeat/internal/contact"
	"playbeat/internal/rating"
	"playbeat/internal/remote"
	"playbeat/internal/store"
	"playbeat/internal/testsupport"
	"playbeat/internal/theme"
)

func newService(t *testing.T) (*api.Service, *testsupport.Harness) {
	t.Helper()
	h := testsupport.NewApp(t, nil)
	return api.NewService(h.App), h
}

func TestTracksFiltersThenSearches(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		genre  string
		query  string
		status string
		ids    []int
	}{
		{name: "all", genre: "all", status: "All songs", ids: []int{1, 2, 3, 4, 5, 6}},
		{name: "unrecognized", genre: "jazz", status: "All songs", ids: []int{1, 2, 3, 4, 5, 6}},
		{name: "rock", genre: "rock", status: "Filtered: rock", ids: []int{1, 2, 5}},
		{name: "rock search", genre: "rock", query: "queen", status: "Filtered: rock", ids: []int{5}},
		{name: "search outside genre", genre: "pop", query: "queen", status: "Filtered: pop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := svc.Tracks(ctx, tt.genre, tt.query)
			if list.Status != tt.status {
				t.Fatalf("status = %q, want %q", list.Status, tt.status)
			}
			var ids []int
			for _, track := range list.Tracks {
				ids = append(ids, track.ID)
			}
			if !slices.Equal(ids, tt.ids) {
				t.Fatalf("ids = %v, want %v", ids, tt.ids)
			}
		})
	}
}

func TestTracksCarryRatingAndMembership(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Rate(ctx, rating.TrackKey(4), api.RatingRequest{Value: 3}); err != nil {
		t.Fatalf("Rate: %v", err)
	}
	list := svc.Tracks(ctx, "", "")
	var suigin api.Track
	for _, track := range list.Tracks {
		if track.ID == 4 {
			suigin = track
		}
	}
	if suigin.Rating != 3 || suigin.Stars != "★★★☆☆" {
		t.Fatalf("unexpected rating on track 4: %+v", suigin)
	}
	if !suigin.InPlaylist {
		t.Fatal("track 4 should be in the default playlist")
	}
}

func TestPlaylistOperations(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()

	pl, err := svc.RemoveFromPlaylist(ctx, 4)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !slices.Equal(pl.IDs, []int{1, 2}) {
		t.Fatalf("ids after remove = %v", pl.IDs)
	}

	change, err := svc.AddToPlaylist(ctx, 5)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !change.Changed || !slices.Equal(change.Playlist.IDs, []int{1, 2, 5}) {
		t.Fatalf("unexpected add result: %+v", change)
	}
	if _, err := svc.AddToPlaylist(ctx, 99); !errors.Is(err, api.ErrUnknownTrack) {
		t.Fatalf("expected ErrUnknownTrack, got %v", err)
	}

	played, err := svc.Play(ctx, 5)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if played.NowPlaying != "Now Playing: "+played.Track.Label {
		t.Fatalf("unexpected now playing %q", played.NowPlaying)
	}
	if got := h.Player.Played(); len(got) != 1 || got[0] != played.Track.URL {
		t.Fatalf("player received %v", got)
	}
	if _, err := svc.Play(ctx, 42); !errors.Is(err, api.ErrUnknownTrack) {
		t.Fatalf("expected ErrUnknownTrack for play, got %v", err)
	}

	cleared, err := svc.ClearPlaylist(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(cleared.IDs) != 0 || len(cleared.Entries) != 0 {
		t.Fatalf("expected empty playlist, got %+v", cleared)
	}
}

func TestPruneReportsRemovedOrphans(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()
	if err := backend.Put(ctx, "playbeat:playlist", []byte("[1,77,2]")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	a, err := app.New(ctx, testsupport.NewConfig(t), app.Options{
		Backend: backend,
		Player:  &testsupport.FakePlayer{},
		Bell:    &testsupport.Bell{},
	})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	defer a.Close()
	svc := api.NewService(a)

	view := svc.Playlist(ctx)
	if len(view.Entries) != 2 || !slices.Equal(view.Orphans, []int{77}) {
		t.Fatalf("expected orphan 77 skipped at render, got %+v", view)
	}
	res, err := svc.PrunePlaylist(ctx)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if !slices.Equal(res.Removed, []int{77}) || !slices.Equal(res.Playlist.IDs, []int{1, 2}) {
		t.Fatalf("unexpected prune result %+v", res)
	}
}

func TestRateValidatesAndHonoursKeys(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()
	key := rating.TrackKey(2)

	if _, err := svc.Rate(ctx, key, api.RatingRequest{Value: 6}); !errors.Is(err, rating.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	got, err := svc.Rate(ctx, key, api.RatingRequest{Value: 4, Key: "Tab"})
	if err != nil {
		t.Fatalf("Rate with Tab: %v", err)
	}
	if got.Value != 0 {
		t.Fatalf("Tab should not commit, got %d", got.Value)
	}
	got, err = svc.Rate(ctx, key, api.RatingRequest{Value: 4, Key: "Enter"})
	if err != nil {
		t.Fatalf("Rate with Enter: %v", err)
	}
	if got.Value != 4 || svc.Rating(ctx, key).Value != 4 {
		t.Fatalf("Enter should commit 4, got %+v", got)
	}
	if h.Bell.Rings(rating.KeyPrefix+key) != 1 {
		t.Fatalf("expected one cue for %s", key)
	}
	all, err := svc.Ratings(ctx)
	if err != nil {
		t.Fatalf("Ratings: %v", err)
	}
	if len(all) != 1 || all[0].Key != key {
		t.Fatalf("unexpected ratings %+v", all)
	}
}

func TestThemeToggle(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if got := svc.Theme(ctx, theme.Dark); got.Theme != "dark" || got.BodyClass != "dark-theme" {
		t.Fatalf("unexpected initial theme %+v", got)
	}
	toggled, err := svc.ToggleTheme(ctx, theme.Dark)
	if err != nil {
		t.Fatalf("ToggleTheme: %v", err)
	}
	if toggled.Theme != "light" {
		t.Fatalf("expected light after toggle, got %q", toggled.Theme)
	}
	if got := svc.Theme(ctx, theme.Dark); got.Theme != "light" {
		t.Fatalf("persisted theme should win over system preference, got %q", got.Theme)
	}
}

func TestQuoteAndContact(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()

	q, err := svc.Quote(ctx)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Text != remote.Quotes[0] {
		t.Fatalf("quote = %q, want %q", q.Text, remote.Quotes[0])
	}
	if h.Bell.Rings(api.TargetQuote) != 1 {
		t.Fatal("expected quote cue")
	}

	resp := svc.Contact(ctx, api.ContactRequest{Name: "Ann", Email: "ann@example.com"})
	if resp.Status != contact.StatusMissingFields || resp.Sent {
		t.Fatalf("unexpected response for missing message: %+v", resp)
	}
	if len(h.Notifier.Messages) != 0 {
		t.Fatal("invalid form must not be sent")
	}

	resp = svc.Contact(ctx, api.ContactRequest{Name: "Ann", Email: "ann@example.com", Message: "hi"})
	if resp.Status != contact.StatusSent || !resp.Sent || resp.Form != (api.ContactRequest{}) {
		t.Fatalf("unexpected response for valid form: %+v", resp)
	}
}

func TestStatusSummarizesState(t *testing.T) {
	svc, _ := newService(t)
	status := svc.Status(context.Background())
	if status.Tracks != 6 || status.PlaylistLength != 3 {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.CurrentID == nil || *status.CurrentID != 1 {
		t.Fatalf("expected current id 1, got %v", status.CurrentID)
	}
	if len(status.Dependencies) != 1 {
		t.Fatalf("expected one dependency, got %d", len(status.Dependencies))
	}
}
