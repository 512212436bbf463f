package testsupport

import (
	"context"
	"sync"
	"testing"

	"playbeat/internal/app"
	"playbeat/internal/config"
	"playbeat/internal/feedback"
	"playbeat/internal/notifications"
	"playbeat/internal/store"
)

// FakePlayer records every locator it is asked to play.
type FakePlayer struct {
	mu     sync.Mutex
	played []string
	Err    error
}

// Play records url and returns Err.
func (p *FakePlayer) Play(_ context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, url)
	return p.Err
}

// Stop is a no-op.
func (p *FakePlayer) Stop() {}

// Played returns the recorded locators.
func (p *FakePlayer) Played() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.played...)
}

// Bell counts audible cues per target.
type Bell struct {
	mu    sync.Mutex
	rings map[string]int
}

// Cue records target.
func (b *Bell) Cue(_ context.Context, target string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rings == nil {
		b.rings = make(map[string]int)
	}
	b.rings[target]++
}

// Rings returns how often target was cued.
func (b *Bell) Rings(target string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rings[target]
}

// Notifier records contact messages.
type Notifier struct {
	mu       sync.Mutex
	Messages []notifications.ContactMessage
	Err      error
}

// NotifyContact records msg and returns Err.
func (n *Notifier) NotifyContact(_ context.Context, msg notifications.ContactMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, msg)
	return n.Err
}

// NotifyError is a no-op.
func (n *Notifier) NotifyError(context.Context, error, string) error { return nil }

// TestNotification is a no-op.
func (n *Notifier) TestNotification(context.Context) error { return nil }

// Harness bundles an App with the fakes it was built from.
type Harness struct {
	App      *app.App
	Backend  *store.Memory
	Player   *FakePlayer
	Bell     *Bell
	Notifier *Notifier
}

// NewApp builds an App over an in-memory store with recording fakes.
func NewApp(t testing.TB, cfg *config.Config) *Harness {
	t.Helper()
	if cfg == nil {
		cfg = NewConfig(t)
	}
	h := &Harness{
		Backend:  store.NewMemory(),
		Player:   &FakePlayer{},
		Bell:     &Bell{},
		Notifier: &Notifier{},
	}
	a, err := app.New(context.Background(), cfg, app.Options{
		Backend:  h.Backend,
		Player:   h.Player,
		Bell:     h.Bell,
		Notifier: h.Notifier,
		Intn:     func(int) int { return 0 },
	})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(func() {
		a.Close()
	})
	h.App = a
	return h
}

var _ feedback.Cue = (*Bell)(nil)
