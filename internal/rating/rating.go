package rating

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"playbeat/internal/feedback"
	"playbeat/internal/logging"
	"playbeat/internal/store"
)

// MaxStars is the fixed size of every control.
const MaxStars = 5

// KeyPrefix namespaces ratings in the store.
const KeyPrefix = "rating:"

// ErrInvalidRating reports a value outside 1..MaxStars.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// TrackKey is the domain key used for catalog tracks.
func TrackKey(id int) string {
	return "track:" + strconv.Itoa(id)
}

// Validate checks that n is a committable rating.
func Validate(n int) error {
	if n < 1 || n > MaxStars {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, n)
	}
	return nil
}

// Factory builds widgets that share a store and cue.
type Factory struct {
	kv     *store.KV
	cue    feedback.Cue
	logger *slog.Logger
}

// NewFactory returns a Factory. A nil cue is silent.
func NewFactory(kv *store.KV, cue feedback.Cue, logger *slog.Logger) *Factory {
	return &Factory{
		kv:     kv,
		cue:    feedback.OrNop(cue),
		logger: logging.NewComponentLogger(logger, "rating"),
	}
}

// Widget constructs the control for key, loading its persisted value.
func (f *Factory) Widget(ctx context.Context, key string) *Widget {
	key = strings.TrimSpace(key)
	value := store.Load(ctx, f.kv, KeyPrefix+key, 0)
	if value < 0 || value > MaxStars {
		value = 0
	}
	return &Widget{factory: f, key: key, value: value}
}

// All returns every persisted rating keyed by domain key.
func (f *Factory) All(ctx context.Context) (map[string]int, error) {
	keys, err := f.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(keys))
	for _, storeKey := range keys {
		if v := store.Load(ctx, f.kv, storeKey, 0); v > 0 && v <= MaxStars {
			out[strings.TrimPrefix(storeKey, KeyPrefix)] = v
		}
	}
	return out, nil
}

// Widget is one star control.
type Widget struct {
	factory *Factory

	mu    sync.Mutex
	key   string
	value int
	hover int
}

// Key returns the domain key.
func (w *Widget) Key() string {
	return w.key
}

// Target is the page region bumped when the rating is committed.
func (w *Widget) Target() string {
	return KeyPrefix + w.key
}

// Value returns the persisted rating, 0 when unrated.
func (w *Widget) Value() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.value
}

// Displayed returns the rating the stars currently show.
func (w *Widget) Displayed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.hover > 0 {
		return w.hover
	}
	return w.value
}

// Hover previews n without persisting. Out-of-range values are ignored.
func (w *Widget) Hover(n int) {
	if Validate(n) != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hover = n
}

// Leave drops the hover preview.
func (w *Widget) Leave() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hover = 0
}

// Click commits n, persists it, and cues.
func (w *Widget) Click(ctx context.Context, n int) error {
	if err := Validate(n); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.factory.kv.Save(ctx, KeyPrefix+w.key, n); err != nil {
		return fmt.Errorf("persist rating: %w", err)
	}
	w.value = n
	w.hover = 0
	w.factory.logger.Debug("rating committed",
		logging.String(logging.FieldKey, w.key),
		logging.Int("rating", n),
	)
	w.factory.cue.Cue(ctx, w.Target())
	return nil
}

// KeyDown treats Enter and Space on star n as a click. Other keys are ignored.
func (w *Widget) KeyDown(ctx context.Context, n int, key string) error {
	switch key {
	case "Enter", " ", "Space", "Spacebar":
		return w.Click(ctx, n)
	default:
		return nil
	}
}

// Star is one rendered star.
type Star struct {
	N      int
	Filled bool
	Label  string
}

// Glyph renders the star.
func (s Star) Glyph() string {
	if s.Filled {
		return "★"
	}
	return "☆"
}

// Stars renders the control for the displayed value.
func (w *Widget) Stars() []Star {
	return StarsFor(w.Displayed())
}

// StarsFor renders a control showing value.
func StarsFor(value int) []Star {
	stars := make([]Star, MaxStars)
	for i := range stars {
		n := i + 1
		stars[i] = Star{
			N:      n,
			Filled: n <= value,
			Label:  fmt.Sprintf("Rate %d stars", n),
		}
	}
	return stars
}

// Render returns the stars as text, e.g. "★★★☆☆".
func (w *Widget) Render() string {
	return RenderValue(w.Displayed())
}

// RenderValue returns value as stars.
func RenderValue(value int) string {
	var b strings.Builder
	for _, s := range StarsFor(value) {
		b.WriteString(s.Glyph())
	}
	return b.String()
}
