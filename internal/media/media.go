package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dhowden/tag"

	"playbeat/internal/catalog"
)

// Resolver maps a track locator onto a file path.
type Resolver interface {
	Resolve(url string) string
}

// Tags is the subset of embedded metadata compared against the catalog.
type Tags struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Genre  string `json:"genre"`
	Format string `json:"format"`
}

// Report describes one track's file.
type Report struct {
	TrackID    int      `json:"track_id"`
	Path       string   `json:"path"`
	Present    bool     `json:"present"`
	Tagged     bool     `json:"tagged"`
	Tags       Tags     `json:"tags"`
	Mismatches []string `json:"mismatches,omitempty"`
	Detail     string   `json:"detail,omitempty"`
}

// OK reports a present file whose tags, if any, match the catalog.
func (r Report) OK() bool {
	return r.Present && len(r.Mismatches) == 0
}

// Probe reads embedded tags from path.
func Probe(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Tags{}, fmt.Errorf("read tags: %w", err)
	}
	artist := m.Artist()
	if artist == "" {
		artist = m.AlbumArtist()
	}
	return Tags{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(artist),
		Genre:  strings.TrimSpace(m.Genre()),
		Format: string(m.Format()),
	}, nil
}

// Check probes every track in tracks.
func Check(tracks []catalog.Track, resolver Resolver) []Report {
	reports := make([]Report, 0, len(tracks))
	for _, track := range tracks {
		reports = append(reports, checkTrack(track, resolver.Resolve(track.URL)))
	}
	return reports
}

func checkTrack(track catalog.Track, path string) Report {
	report := Report{TrackID: track.ID, Path: path}
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		report.Detail = "file not found"
		return report
	case err != nil:
		report.Detail = err.Error()
		return report
	case info.IsDir():
		report.Detail = "path is a directory"
		return report
	}
	report.Present = true

	tags, err := Probe(path)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			report.Detail = "no embedded tags"
		} else {
			report.Detail = err.Error()
		}
		return report
	}
	report.Tagged = true
	report.Tags = tags
	if tags.Title != "" && !strings.EqualFold(tags.Title, track.Title) {
		report.Mismatches = append(report.Mismatches, fmt.Sprintf("title %q != %q", tags.Title, track.Title))
	}
	if tags.Artist != "" && !strings.EqualFold(tags.Artist, track.Artist) {
		report.Mismatches = append(report.Mismatches, fmt.Sprintf("artist %q != %q", tags.Artist, track.Artist))
	}
	return report
}
