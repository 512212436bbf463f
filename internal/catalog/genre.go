package catalog

// GenreAll shows every track.
const GenreAll = "all"

// Genres lists the recognized genres in display order.
var Genres = []string{"rock", "pop", "folk"}

// NormalizeGenre maps any unrecognized value onto GenreAll. Matching is exact.
func NormalizeGenre(genre string) string {
	switch genre {
	case "rock", "pop", "folk":
		return genre
	default:
		return GenreAll
	}
}

// Filter keeps tracks of the given genre, or all tracks when the genre is
// unrecognized or "all".
func Filter(tracks []Track, genre string) []Track {
	g := NormalizeGenre(genre)
	if g == GenreAll {
		return tracks
	}
	out := make([]Track, 0, len(tracks))
	for _, track := range tracks {
		if track.Genre == g {
			out = append(out, track)
		}
	}
	return out
}

// FilterStatus is the status line shown next to the genre selector.
func FilterStatus(genre string) string {
	g := NormalizeGenre(genre)
	if g == GenreAll {
		return "All songs"
	}
	return "Filtered: " + g
}
