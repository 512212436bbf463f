package site

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"playbeat/internal/api"
	"playbeat/internal/catalog"
	"playbeat/internal/clock"
	"playbeat/internal/config"
	"playbeat/internal/contact"
	"playbeat/internal/feedback"
	"playbeat/internal/rating"
	"playbeat/internal/remote"
)

// QuoteLoading is shown while a quote is fetched.
const QuoteLoading = "Loading…"

var titleCaser = cases.Title(language.English)

type genreOption struct {
	Value    string
	Label    string
	Selected bool
}

type trackRow struct {
	api.Track
	RatingKey string
	Target    string
	Stars     []rating.Star
}

// viewState is the per-client page state carried across redirects.
type viewState struct {
	Genre string
	Query string
	Name  string
	FAQ   int
	Quote int
	Sent  bool
}

func readViewState(values url.Values) viewState {
	v := viewState{
		Genre: values.Get("genre"),
		Query: strings.TrimSpace(values.Get("q")),
		Name:  strings.TrimSpace(values.Get("name")),
		FAQ:   -1,
		Quote: -1,
		Sent:  values.Get("contact") == "sent",
	}
	if i, err := strconv.Atoi(values.Get("faq")); err == nil {
		v.FAQ = i
	}
	if i, err := strconv.Atoi(values.Get("quote")); err == nil {
		v.Quote = i
	}
	return v
}

func (v viewState) values() url.Values {
	out := url.Values{}
	if v.Genre != "" {
		out.Set("genre", v.Genre)
	}
	if v.Query != "" {
		out.Set("q", v.Query)
	}
	if v.Name != "" {
		out.Set("name", v.Name)
	}
	if v.FAQ >= 0 {
		out.Set("faq", strconv.Itoa(v.FAQ))
	}
	if v.Quote >= 0 {
		out.Set("quote", strconv.Itoa(v.Quote))
	}
	if v.Sent {
		out.Set("contact", "sent")
	}
	return out
}

type pageData struct {
	Title        string
	Theme        api.Theme
	Background   string
	Clock        clock.Reading
	Nav          []config.NavLink
	Name         string
	Greeting     string
	Genres       []genreOption
	Query        string
	FilterStatus string
	Tracks       []trackRow
	Playlist     []trackRow
	CurrentID    int
	NowPlaying   string
	FAQ          []FAQItem
	State        viewState
	Quote        string
	QuoteLoading string
	Contact      api.ContactResponse
	Bumped       map[string]bool
}

func (s *Server) buildPage(ctx context.Context, r *http.Request, state viewState, form *api.ContactResponse) pageData {
	svc := s.svc
	list := svc.Tracks(ctx, state.Genre, state.Query)
	pl := svc.Playlist(ctx)

	accordion := NewAccordion(s.site.FAQ)
	if state.FAQ >= 0 && !accordion.Select(ctx, state.FAQ) {
		state.FAQ = -1
	}

	data := pageData{
		Title:        s.site.Title,
		Theme:        svc.Theme(ctx, systemTheme(r)),
		Background:   s.background.Override(),
		Clock:        clock.Format(s.now()),
		Nav:          s.site.Nav,
		Name:         state.Name,
		Greeting:     Greeting(state.Name),
		Query:        list.Query,
		FilterStatus: list.Status,
		Tracks:       rows(list.Tracks),
		Playlist:     rows(pl.Entries),
		NowPlaying:   pl.NowPlaying,
		FAQ:          accordion.Items(),
		State:        state,
		QuoteLoading: QuoteLoading,
		Bumped:       map[string]bool{},
	}
	for i := range data.FAQ {
		link := state
		link.FAQ = i
		link.Sent = false
		data.FAQ[i].Href = "/?" + link.values().Encode() + "#faq"
	}
	if pl.CurrentID != nil {
		data.CurrentID = *pl.CurrentID
	}
	data.Genres = append(data.Genres, genreOption{Value: catalog.GenreAll, Label: "All", Selected: list.Genre == catalog.GenreAll})
	for _, g := range catalog.Genres {
		data.Genres = append(data.Genres, genreOption{Value: g, Label: titleCaser.String(g), Selected: list.Genre == g})
	}
	if state.Quote >= 0 && state.Quote < len(remote.Quotes) {
		data.Quote = remote.Quotes[state.Quote]
	}
	if form != nil {
		data.Contact = *form
	} else if state.Sent {
		data.Contact = api.ContactResponse{Status: contact.StatusSent, Sent: true}
	}

	for _, target := range feedback.RecorderFrom(ctx).Targets() {
		data.Bumped[target] = true
	}
	for _, target := range strings.Split(r.URL.Query().Get("bump"), ",") {
		if target = strings.TrimSpace(target); target != "" {
			data.Bumped[target] = true
		}
	}
	return data
}

func rows(tracks []api.Track) []trackRow {
	out := make([]trackRow, len(tracks))
	for i, track := range tracks {
		key := rating.TrackKey(track.ID)
		out[i] = trackRow{
			Track:     track,
			RatingKey: key,
			Target:    rating.KeyPrefix + key,
			Stars:     rating.StarsFor(track.Rating),
		}
	}
	return out
}

func quoteIndex(text string) int {
	return slices.Index(remote.Quotes, text)
}
