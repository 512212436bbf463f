package theme

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"playbeat/internal/feedback"
	"playbeat/internal/logging"
	"playbeat/internal/store"
)

// Theme is the presentation mode.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Key stores the chosen theme.
const Key = "playbeat:theme"

// Target is the page region bumped when the theme flips.
const Target = "theme"

// Parse accepts "light" or "dark" in any case.
func Parse(value string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	default:
		return "", false
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Presentation is what the page applies for a theme.
type Presentation struct {
	Theme     Theme  `json:"theme"`
	BodyClass string `json:"body_class"`
	Label     string `json:"label"`
	AriaLabel string `json:"aria_label"`
	Pressed   bool   `json:"aria_pressed"`
}

// Present describes how t is applied. The toggle advertises the theme it
// switches to.
func Present(t Theme) Presentation {
	if t == Dark {
		return Presentation{
			Theme:     Dark,
			BodyClass: "dark-theme",
			Label:     "☀️ Day",
			AriaLabel: "Switch to day theme",
			Pressed:   true,
		}
	}
	return Presentation{
		Theme:     Light,
		Label:     "🌙 Night",
		AriaLabel: "Switch to night theme",
	}
}

// FromClientHint reads the Sec-CH-Prefers-Color-Scheme header value.
func FromClientHint(header string) Theme {
	if t, ok := Parse(strings.Trim(strings.TrimSpace(header), `"`)); ok {
		return t
	}
	return Light
}

// SystemPreference inspects PLAYBEAT_COLOR_SCHEME, then a ":dark" GTK_THEME
// suffix. Anything else is light.
func SystemPreference() Theme {
	if t, ok := Parse(os.Getenv("PLAYBEAT_COLOR_SCHEME")); ok {
		return t
	}
	if strings.HasSuffix(strings.ToLower(os.Getenv("GTK_THEME")), ":dark") {
		return Dark
	}
	return Light
}

// Controller owns the persisted theme.
type Controller struct {
	mu     sync.Mutex
	kv     *store.KV
	cue    feedback.Cue
	logger *slog.Logger
}

// NewController returns a Controller. A nil cue is silent.
func NewController(kv *store.KV, cue feedback.Cue, logger *slog.Logger) *Controller {
	return &Controller{
		kv:     kv,
		cue:    feedback.OrNop(cue),
		logger: logging.NewComponentLogger(logger, "theme"),
	}
}

// Current returns the persisted theme, or system when none is stored.
func (c *Controller) Current(ctx context.Context, system Theme) Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked(ctx, system)
}

func (c *Controller) currentLocked(ctx context.Context, system Theme) Theme {
	if t, ok := Parse(store.Load(ctx, c.kv, Key, "")); ok {
		return t
	}
	if t, ok := Parse(string(system)); ok {
		return t
	}
	return Light
}

// Toggle flips the theme, persists it, and cues.
func (c *Controller) Toggle(ctx context.Context, system Theme) (Theme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.currentLocked(ctx, system).Opposite()
	if err := c.kv.Save(ctx, Key, string(next)); err != nil {
		return "", fmt.Errorf("persist theme: %w", err)
	}
	c.logger.Debug("theme toggled", logging.String("theme", string(next)))
	c.cue.Cue(ctx, Target)
	return next, nil
}
