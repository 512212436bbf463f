package main

import (
	"strings"
	"testing"

	"playbeat/internal/api"
)

func TestRenderTracksIncludesRatingAndMembership(t *testing.T) {
	out := renderTracks([]api.Track{{
		ID:           4,
		Artist:       "Aikyn Tolebergen",
		Title:        "Suigin",
		GenreLabel:   "Folk",
		DurationText: "3:12",
		Stars:        "★★★☆☆",
		InPlaylist:   true,
	}})
	for _, want := range []string{"Aikyn Tolebergen", "Suigin", "Folk", "3:12", "★★★☆☆", "yes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
}

func TestRenderStatusLine(t *testing.T) {
	got := renderStatusLine("Playbeat", statusOK, "Running", false)
	if !strings.Contains(got, "Playbeat:") || !strings.Contains(got, "[OK] Running") {
		t.Fatalf("unexpected status line %q", got)
	}
	colored := renderStatusLine("Playbeat", statusError, "", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected colorized line, got %q", colored)
	}
}

func TestDependencyLinesSeverity(t *testing.T) {
	lines := dependencyLines([]api.DependencyStatus{
		{Name: "Audio player", Command: "ffplay", Optional: true, Available: false},
	}, false)
	if len(lines) != 1 || !strings.Contains(lines[0], "[WARN]") {
		t.Fatalf("expected optional missing dependency as warning, got %v", lines)
	}
}
