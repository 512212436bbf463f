package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Track is an immutable catalog entry.
type Track struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Genre    string `json:"genre"`
	Duration int    `json:"duration"`
	URL      string `json:"url"`
}

// Label renders "<artist> – <title>".
func (t Track) Label() string {
	return t.Artist + " – " + t.Title
}

// GenreLabel renders the genre for display, e.g. "Rock".
func (t Track) GenreLabel() string {
	return cases.Title(language.English).String(t.Genre)
}

// Catalog is a read-only ordered list of tracks.
type Catalog struct {
	tracks []Track
}

// New builds a catalog from tracks. Identifiers must be positive and unique.
func New(tracks []Track) (*Catalog, error) {
	seen := make(map[int]struct{}, len(tracks))
	for _, track := range tracks {
		if track.ID <= 0 {
			return nil, fmt.Errorf("track %q: id %d must be positive", track.Title, track.ID)
		}
		if track.Duration < 0 {
			return nil, fmt.Errorf("track %d: negative duration", track.ID)
		}
		if _, dup := seen[track.ID]; dup {
			return nil, fmt.Errorf("track id %d listed twice", track.ID)
		}
		seen[track.ID] = struct{}{}
	}
	return &Catalog{tracks: append([]Track(nil), tracks...)}, nil
}

var defaultTracks = []Track{
	{ID: 1, Title: "Hotel California", Artist: "The Eagles", Genre: "rock", Duration: 390, URL: "media/hotel_california.mp3"},
	{ID: 2, Title: "Gruppa Krovi", Artist: "Kino", Genre: "rock", Duration: 290, URL: "media/gruppa_krovi.mp3"},
	{ID: 3, Title: "Where Have You Been (Remix)", Artist: "Rihanna", Genre: "pop", Duration: 260, URL: "media/rihanna_where_have_you_been_remix.mp3"},
	{ID: 4, Title: "Suigin", Artist: "Aikyn Tolebergen", Genre: "folk", Duration: 215, URL: "media/aikyn_suigin.mp3"},
	{ID: 5, Title: "Don't Stop Me Now", Artist: "Queen", Genre: "rock", Duration: 210, URL: "media/queen_dont_stop_me_now.mp3"},
	{ID: 6, Title: "Levitating", Artist: "Dua Lipa", Genre: "pop", Duration: 203, URL: "media/dua_lipa_levitating.mp3"},
}

// Default returns the compiled-in catalog.
func Default() *Catalog {
	return &Catalog{tracks: append([]Track(nil), defaultTracks...)}
}

// Tracks returns a copy of every track in catalog order.
func (c *Catalog) Tracks() []Track {
	return append([]Track(nil), c.tracks...)
}

// Len reports the number of tracks.
func (c *Catalog) Len() int {
	return len(c.tracks)
}

// Find returns the track with id.
func (c *Catalog) Find(id int) (Track, bool) {
	for _, track := range c.tracks {
		if track.ID == id {
			return track, true
		}
	}
	return Track{}, false
}

// FormatDuration renders seconds as m:ss. Negative input renders as 0:00.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

var folder = cases.Fold()

// Search keeps tracks whose "<title> <artist> <genre>" contains query,
// compared case-insensitively. A blank query keeps everything.
func Search(tracks []Track, query string) []Track {
	needle := folder.String(strings.TrimSpace(query))
	if needle == "" {
		return tracks
	}
	out := make([]Track, 0, len(tracks))
	for _, track := range tracks {
		haystack := folder.String(track.Title + " " + track.Artist + " " + track.Genre)
		if strings.Contains(haystack, needle) {
			out = append(out, track)
		}
	}
	return out
}
