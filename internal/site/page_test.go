package site_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"playbeat/internal/api"
	"playbeat/internal/app"
	"playbeat/internal/contact"
	"playbeat/internal/remote"
	"playbeat/internal/site"
	"playbeat/internal/store"
	"playbeat/internal/testsupport"
)

func TestPageRendersRegions(t *testing.T) {
	srv, _ := newServer(t, nil, site.Options{})

	rec := do(t, srv, http.MethodGet, "/?name=Ann&genre=folk&faq=1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Hello, Ann! 👋 Welcome to Play Beat.",
		"Filtered: folk",
		"Suigin",
		`id="faq-1" class="faq-answer js-bump"`,
		`aria-label="Rate 3 stars"`,
		"Your playlist",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if strings.Contains(body, "Hotel California</strong>") {
		t.Fatal("folk filter should hide rock tracks from the catalog list")
	}
	if !strings.Contains(body, `id="faq-0" class="faq-answer" hidden`) {
		t.Fatal("unopened FAQ answers must stay hidden")
	}
}

func TestFreshLightPageHasNoInlineBackground(t *testing.T) {
	srv, _ := newServer(t, nil, site.Options{})

	body := do(t, srv, http.MethodGet, "/", "", nil).Body.String()
	if !strings.Contains(body, `<body class="">`) {
		t.Fatal("expected a light body without inline style")
	}
	if strings.Contains(body, "background-color") {
		t.Fatal("background must not be set inline before it is changed")
	}
}

func TestActionsRedirectWithBumps(t *testing.T) {
	srv, _ := newServer(t, nil, site.Options{})

	rec := formRequest(t, srv, "/actions/playlist/remove", url.Values{"id": {"4"}, "genre": {"rock"}, "name": {"Ann"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	q := loc.Query()
	if q.Get("genre") != "rock" || q.Get("name") != "Ann" || q.Get("bump") != "playlist" {
		t.Fatalf("unexpected redirect %q", loc)
	}

	page := do(t, srv, http.MethodGet, loc.String(), "", nil).Body.String()
	if !strings.Contains(page, `id="playlist" class="js-bump"`) {
		t.Fatal("expected playlist region to carry the bump class")
	}
	if strings.Contains(page, "Aikyn Tolebergen – Suigin") {
		t.Fatal("removed track still rendered in the playlist")
	}

	if rec := formRequest(t, srv, "/actions/playlist/add", url.Values{"id": {"abc"}}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}
	if rec := formRequest(t, srv, "/actions/play", url.Values{"id": {"77"}}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown track, got %d", rec.Code)
	}
}

func TestQuoteActionCarriesQuote(t *testing.T) {
	srv, h := newServer(t, nil, site.Options{})

	rec := formRequest(t, srv, "/actions/quote", url.Values{})
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "quote=0") || !strings.Contains(loc, "bump=quote") {
		t.Fatalf("unexpected redirect %q", loc)
	}
	if h.Bell.Rings("quote") != 1 {
		t.Fatal("expected the quote cue to ring")
	}
	page := do(t, srv, http.MethodGet, loc, "", nil).Body.String()
	if !strings.Contains(page, remote.Quotes[0]) {
		t.Fatalf("page does not show %q", remote.Quotes[0])
	}
	if !strings.Contains(page, `data-loading="Loading…"`) {
		t.Fatal("expected the loading placeholder")
	}
}

func TestContactActionKeepsFormOnValidationFailure(t *testing.T) {
	srv, h := newServer(t, nil, site.Options{})

	rec := formRequest(t, srv, "/actions/contact", url.Values{
		"contact_name":  {"Ann"},
		"contact_email": {"ann@example.com"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, contact.StatusMissingFields) || !strings.Contains(body, `value="ann@example.com"`) {
		t.Fatal("expected validation status with the form left intact")
	}
	if len(h.Notifier.Messages) != 0 {
		t.Fatal("invalid form reached the notifier")
	}

	rec = formRequest(t, srv, "/actions/contact", url.Values{
		"contact_name":    {"Ann"},
		"contact_email":   {"ann@example.com"},
		"contact_message": {"Hello"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "contact=sent") {
		t.Fatalf("unexpected redirect %q", loc)
	}
	page := do(t, srv, http.MethodGet, loc, "", nil).Body.String()
	if !strings.Contains(page, contact.StatusSent) || strings.Contains(page, `value="ann@example.com"`) {
		t.Fatal("expected sent status with a reset form")
	}
}

func TestThemeAndBackgroundActions(t *testing.T) {
	srv, h := newServer(t, nil, site.Options{})

	rec := formRequest(t, srv, "/actions/background", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := srv.Background().Current(); got != site.Palette[1] {
		t.Fatalf("background = %q, want %q", got, site.Palette[1])
	}
	if h.Bell.Rings(site.TargetBackground) != 1 {
		t.Fatal("expected a background cue")
	}
	page := do(t, srv, http.MethodGet, "/", "", nil).Body.String()
	if !strings.Contains(page, `style="background-color: `+site.Palette[1]+`"`) {
		t.Fatal("expected the changed background inline on the body")
	}

	rec = formRequest(t, srv, "/actions/theme", url.Values{})
	if !strings.Contains(rec.Header().Get("Location"), "bump=theme") {
		t.Fatalf("unexpected redirect %q", rec.Header().Get("Location"))
	}
	page := do(t, srv, http.MethodGet, "/", "", nil).Body.String()
	if !strings.Contains(page, `<body class="dark-theme"`) {
		t.Fatal("expected dark theme after toggling from light")
	}
}

func TestRateActionPersists(t *testing.T) {
	srv, _ := newServer(t, nil, site.Options{})

	rec := formRequest(t, srv, "/actions/rate", url.Values{"key": {"track:1"}, "value": {"5"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "bump=rating%3Atrack%3A1") {
		t.Fatalf("unexpected redirect %q", loc)
	}
	if rec := formRequest(t, srv, "/actions/rate", url.Values{"key": {"track:1"}, "value": {"0"}}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero stars, got %d", rec.Code)
	}
}

type readOnlyBackend struct {
	*store.Memory
}

func (readOnlyBackend) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestRateActionStoreFailureIsServerError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	a, err := app.New(context.Background(), cfg, app.Options{Backend: readOnlyBackend{store.NewMemory()}})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	srv, err := site.New(api.NewService(a), site.Options{})
	if err != nil {
		t.Fatalf("site.New: %v", err)
	}

	rec := formRequest(t, srv, "/actions/rate", url.Values{"key": {"track:1"}, "value": {"4"}})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when the rating cannot be saved, got %d", rec.Code)
	}
}
