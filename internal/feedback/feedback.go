package feedback

import (
	"context"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/mattn/go-isatty"
)

// Cue acknowledges an action on target, a page region name such as "playlist".
type Cue interface {
	Cue(ctx context.Context, target string)
}

// CueFunc adapts a function to Cue.
type CueFunc func(ctx context.Context, target string)

// Cue calls f.
func (f CueFunc) Cue(ctx context.Context, target string) { f(ctx, target) }

// Nop ignores every cue.
type Nop struct{}

// Cue does nothing.
func (Nop) Cue(context.Context, string) {}

// Bell rings the terminal bell. It stays silent unless the writer is a terminal.
type Bell struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
}

// NewBell rings on f when f is a terminal.
func NewBell(f *os.File) *Bell {
	if f == nil {
		return &Bell{}
	}
	fd := f.Fd()
	return &Bell{w: f, enabled: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

// Cue writes BEL. Write errors are ignored.
func (b *Bell) Cue(context.Context, string) {
	if b == nil || !b.enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.w.Write([]byte{'\a'})
}

// Recorder collects the regions bumped while handling one request so the
// renderer can mark them.
type Recorder struct {
	mu      sync.Mutex
	targets []string
}

// Bump marks target.
func (r *Recorder) Bump(target string) {
	if r == nil || target == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.targets, target) {
		r.targets = append(r.targets, target)
	}
}

// Bumped reports whether target was marked.
func (r *Recorder) Bumped(target string) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.targets, target)
}

// Targets returns the marked regions in bump order.
func (r *Recorder) Targets() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.targets)
}

type recorderKey struct{}

// WithRecorder attaches r to ctx.
func WithRecorder(ctx context.Context, r *Recorder) context.Context {
	return context.WithValue(ctx, recorderKey{}, r)
}

// RecorderFrom returns the recorder attached to ctx, if any.
func RecorderFrom(ctx context.Context) *Recorder {
	if ctx == nil {
		return nil
	}
	r, _ := ctx.Value(recorderKey{}).(*Recorder)
	return r
}

// Visual bumps target on the recorder carried by ctx.
type Visual struct{}

// Cue marks target when ctx carries a recorder.
func (Visual) Cue(ctx context.Context, target string) {
	RecorderFrom(ctx).Bump(target)
}

// Bump applies only the visual half of a cue.
func Bump(ctx context.Context, target string) {
	RecorderFrom(ctx).Bump(target)
}

type multi []Cue

func (m multi) Cue(ctx context.Context, target string) {
	for _, c := range m {
		c.Cue(ctx, target)
	}
}

// Multi fans a cue out to every non-nil cue.
func Multi(cues ...Cue) Cue {
	kept := make(multi, 0, len(cues))
	for _, c := range cues {
		if c != nil {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return Nop{}
	}
	return kept
}

// OrNop returns c, or Nop when c is nil.
func OrNop(c Cue) Cue {
	if c == nil {
		return Nop{}
	}
	return c
}
