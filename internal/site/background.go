package site

import (
	"context"
	"sync"

	"playbeat/internal/feedback"
)

// TargetBackground is the region cued when the background changes.
const TargetBackground = "background"

// Palette is the background cycle.
var Palette = []string{"#101316", "#14181b", "#1a1f24", "#20262c", "#262e35"}

// Background cycles the page background for the lifetime of the process.
type Background struct {
	mu      sync.Mutex
	idx     int
	changed bool
	bell    feedback.Cue
}

// NewBackground starts at the first palette colour. Changes ring bell.
func NewBackground(bell feedback.Cue) *Background {
	return &Background{bell: feedback.OrNop(bell)}
}

// Current returns the active colour.
func (b *Background) Current() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Palette[b.idx]
}

// Override returns the colour to apply inline, or "" until the first Next.
func (b *Background) Override() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.changed {
		return ""
	}
	return Palette[b.idx]
}

// Next advances to the following colour and cues.
func (b *Background) Next(ctx context.Context) string {
	b.mu.Lock()
	b.idx = (b.idx + 1) % len(Palette)
	b.changed = true
	colour := Palette[b.idx]
	b.mu.Unlock()
	b.bell.Cue(ctx, TargetBackground)
	return colour
}
