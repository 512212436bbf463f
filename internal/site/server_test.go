package site_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"
	"time"

	"playbeat/internal/api"
	"playbeat/internal/config"
	"playbeat/internal/contact"
	"playbeat/internal/site"
	"playbeat/internal/testsupport"
)

func newServer(t *testing.T, cfg *config.Config, opts site.Options) (*site.Server, *testsupport.Harness) {
	t.Helper()
	if cfg == nil {
		cfg = testsupport.NewConfig(t)
	}
	h := testsupport.NewApp(t, cfg)
	srv, err := site.New(api.NewService(h.App), opts)
	if err != nil {
		t.Fatalf("site.New: %v", err)
	}
	return srv, h
}

func do(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestTracksEndpointFilters(t *testing.T) {
	srv, _ := newServer(t, nil, site.Options{})

	rec := do(t, srv, http.MethodGet, "/api/tracks?genre=rock", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	list := decode[api.TrackList](t, rec)
	if list.Status != "Filtered: rock" || len(list.Tracks) != 3 {
		t.Fatalf("unexpected list %+v", list)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a request id header")
	}

	list = decode[api.TrackList](t, do(t, srv, http.MethodGet, "/api/tracks?genre=ROCK&q=kino", "", nil))
	if list.Status != "All songs" || len(list.Tracks) != 1 || list.Tracks[0].ID != 2 {
		t.Fatalf("unexpected search result %+v", list)
	}
}

func TestMutatingRoutesRequireToken(t *testing.T) {
	srv, _ := newServer(t, nil, site.Options{Token: "s3cret"})

	rec := do(t, srv, http.MethodPost, "/api/playlist", `{"id":5}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	rec = do(t, srv, http.MethodPost, "/api/playlist", `{"id":5}`, map[string]string{"Authorization": "Bearer wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", rec.Code)
	}
	rec = do(t, srv, http.MethodPost, "/api/playlist", `{"id":5}`, map[string]string{"Authorization": "Bearer s3cret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
	change := decode[api.PlaylistChange](t, rec)
	if !change.Changed || !slices.Equal(change.Playlist.IDs, []int{1, 4, 2, 5}) {
		t.Fatalf("unexpected change %+v", change)
	}
	if bump := rec.Header().Get("X-Playbeat-Bump"); bump != "playlist" {
		t.Fatalf("X-Playbeat-Bump = %q, want playlist", bump)
	}

	if rec := do(t, srv, http.MethodGet, "/api/playlist", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("reads stay open, got %d", rec.Code)
	}
}

func TestPlaylistEndpoints(t *testing.T) {
	srv, h := newServer(t, nil, site.Options{})

	pl := decode[api.Playlist](t, do(t, srv, http.MethodDelete, "/api/playlist/4", "", nil))
	if !slices.Equal(pl.IDs, []int{1, 2}) {
		t.Fatalf("ids after delete = %v", pl.IDs)
	}

	rec := do(t, srv, http.MethodPost, "/api/play/2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("play status = %d", rec.Code)
	}
	played := decode[api.PlayResult](t, rec)
	if played.NowPlaying != "Now Playing: Kino – Gruppa Krovi" {
		t.Fatalf("now playing = %q", played.NowPlaying)
	}
	if h.Bell.Rings("now-playing") != 0 {
		t.Fatal("play must not ring the bell")
	}
	if got := rec.Header().Get("X-Playbeat-Bump"); got != "now-playing" {
		t.Fatalf("expected now-playing bump, got %q", got)
	}

	if rec := do(t, srv, http.MethodPost, "/api/play/99", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown track, got %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodPost, "/api/playlist", `{"id":99}`, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown add, got %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodPost, "/api/playlist", `{"track":1}`, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}

	pl = decode[api.Playlist](t, do(t, srv, http.MethodDelete, "/api/playlist", "", nil))
	if len(pl.IDs) != 0 {
		t.Fatalf("expected empty playlist, got %v", pl.IDs)
	}
}

func TestRatingEndpoints(t *testing.T) {
	srv, _ := newServer(t, nil, site.Options{})

	if rec := do(t, srv, http.MethodPut, "/api/ratings/track:2", `{"value":9}`, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range rating, got %d", rec.Code)
	}
	rec := do(t, srv, http.MethodPut, "/api/ratings/track:2", `{"value":4}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("rate status = %d: %s", rec.Code, rec.Body.String())
	}
	got := decode[api.Rating](t, do(t, srv, http.MethodGet, "/api/ratings/track:2", "", nil))
	if got.Value != 4 || got.Stars != "★★★★☆" {
		t.Fatalf("unexpected rating %+v", got)
	}
	all := decode[[]api.Rating](t, do(t, srv, http.MethodGet, "/api/ratings", "", nil))
	if len(all) != 1 || all[0].Key != "track:2" {
		t.Fatalf("unexpected ratings list %+v", all)
	}
}

func TestThemeEndpointsUseClientHint(t *testing.T) {
	srv, _ := newServer(t, nil, site.Options{})
	dark := map[string]string{"Sec-CH-Prefers-Color-Scheme": `"dark"`}

	got := decode[api.Theme](t, do(t, srv, http.MethodGet, "/api/theme", "", dark))
	if got.Theme != "dark" {
		t.Fatalf("initial theme = %q, want dark", got.Theme)
	}
	got = decode[api.Theme](t, do(t, srv, http.MethodPost, "/api/theme/toggle", "", dark))
	if got.Theme != "light" || got.Label != "🌙 Night" {
		t.Fatalf("toggled theme = %+v", got)
	}
	got = decode[api.Theme](t, do(t, srv, http.MethodGet, "/api/theme", "", dark))
	if got.Theme != "light" {
		t.Fatalf("persisted theme should stick, got %q", got.Theme)
	}
}

func TestContactEndpoint(t *testing.T) {
	srv, h := newServer(t, nil, site.Options{ContactRatePerMinute: 2})

	resp := decode[api.ContactResponse](t, do(t, srv, http.MethodPost, "/api/contact", `{"name":"Ann","email":"a@b.c","message":""}`, nil))
	if resp.Status != contact.StatusMissingFields || resp.Form.Name != "Ann" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(h.Notifier.Messages) != 0 {
		t.Fatal("invalid form reached the notifier")
	}

	resp = decode[api.ContactResponse](t, do(t, srv, http.MethodPost, "/api/contact", `{"name":"Ann","email":"a@b.c","message":"hi"}`, nil))
	if resp.Status != contact.StatusSent || resp.ID == "" {
		t.Fatalf("unexpected response %+v", resp)
	}

	rec := do(t, srv, http.MethodPost, "/api/contact", `{"name":"Ann","email":"a@b.c","message":"again"}`, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the limit is spent, got %d", rec.Code)
	}
}

func TestClockStreamsTicks(t *testing.T) {
	fixed := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	srv, _ := newServer(t, nil, site.Options{
		ClockInterval: time.Millisecond,
		Now:           func() time.Time { return fixed },
	})

	rec := do(t, srv, http.MethodGet, "/api/clock?count=2", "", nil)
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	if n := strings.Count(body, "event: tick"); n != 2 {
		t.Fatalf("expected 2 ticks, got %d in %q", n, body)
	}
	if !strings.Contains(body, `"date":"Tuesday, March 5, 2024"`) || !strings.Contains(body, `"time":"02:07:09 PM"`) {
		t.Fatalf("unexpected tick payload %q", body)
	}
}

func TestGreetingAndNavEndpoints(t *testing.T) {
	srv, _ := newServer(t, nil, site.Options{})

	g := decode[api.Greeting](t, do(t, srv, http.MethodGet, "/api/greeting?name=+Ann+", "", nil))
	if g.Message != "Hello, Ann! 👋 Welcome to Play Beat." {
		t.Fatalf("greeting = %q", g.Message)
	}

	type navResp struct {
		Index int    `json:"index"`
		Moved bool   `json:"moved"`
		Href  string `json:"href"`
	}
	nav := decode[navResp](t, do(t, srv, http.MethodGet, "/api/nav?index=0&key=ArrowLeft", "", nil))
	if !nav.Moved || nav.Index != 4 || nav.Href != "/#about" {
		t.Fatalf("unexpected nav %+v", nav)
	}
	nav = decode[navResp](t, do(t, srv, http.MethodGet, "/api/nav?index=2&key=ArrowRight&focus=input", "", nil))
	if nav.Moved || nav.Index != 2 {
		t.Fatalf("keys inside inputs must be ignored, got %+v", nav)
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv, _ := newServer(t, nil, site.Options{})
	status := decode[api.Status](t, do(t, srv, http.MethodGet, "/api/status", "", nil))
	if status.Tracks != 6 || status.PlaylistLength != 3 {
		t.Fatalf("unexpected status %+v", status)
	}

	custom, _ := newServer(t, nil, site.Options{Status: func(context.Context) api.Status {
		return api.Status{Running: true, PID: 42}
	}})
	status = decode[api.Status](t, do(t, custom, http.MethodGet, "/api/status", "", nil))
	if !status.Running || status.PID != 42 {
		t.Fatalf("expected daemon status override, got %+v", status)
	}
}

func TestMethodMismatchIsRejected(t *testing.T) {
	srv, _ := newServer(t, nil, site.Options{})
	if rec := do(t, srv, http.MethodPost, "/api/tracks", "", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func formRequest(t *testing.T, h http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
