package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

var commandContext = exec.CommandContext

// ErrMediaMissing reports a track whose file is not present under the media directory.
var ErrMediaMissing = errors.New("media file missing")

// Player starts playback of a track locator.
type Player interface {
	Play(ctx context.Context, url string) error
	Stop()
}

// Waiter is implemented by players that can block until playback ends.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Option configures the CLI player.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary = strings.TrimSpace(binary); binary != "" {
			c.binary = binary
		}
	}
}

// WithArgs sets the arguments placed before the file path.
func WithArgs(args ...string) Option {
	return func(c *CLI) {
		c.args = append([]string(nil), args...)
	}
}

// WithMediaDir sets the directory that relative track locators resolve under.
func WithMediaDir(dir string) Option {
	return func(c *CLI) {
		c.mediaDir = dir
	}
}

// CLI plays files with a command-line player such as ffplay. One track plays
// at a time; starting a new track stops the previous one.
type CLI struct {
	binary   string
	args     []string
	mediaDir string

	mu      sync.Mutex
	current *playback
}

type playback struct {
	path   string
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCLI constructs a CLI player using defaults.
func NewCLI(opts ...Option) *CLI {
	c := &CLI{binary: "ffplay"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve maps a track locator onto a file path. Locators of the form
// "media/<file>" and bare relative names resolve under the media directory;
// absolute paths pass through.
func (c *CLI) Resolve(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || filepath.IsAbs(url) {
		return url
	}
	rel := strings.TrimPrefix(filepath.ToSlash(url), "media/")
	if c.mediaDir == "" {
		return filepath.FromSlash(url)
	}
	return filepath.Join(c.mediaDir, filepath.FromSlash(rel))
}

// Play stops any current playback and starts the player on url. The process
// outlives ctx; ctx only bounds the start.
func (c *CLI) Play(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := c.Resolve(url)
	if path == "" {
		return errors.New("track locator required")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrMediaMissing, path)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()

	procCtx, cancel := context.WithCancel(context.Background())
	args := append(append([]string(nil), c.args...), path)
	cmd := commandContext(procCtx, c.binary, args...) //nolint:gosec
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start %s: %w", c.binary, err)
	}
	pb := &playback{path: path, cancel: cancel, done: make(chan struct{})}
	c.current = pb
	go func() {
		_ = cmd.Wait()
		cancel()
		close(pb.done)
		c.mu.Lock()
		if c.current == pb {
			c.current = nil
		}
		c.mu.Unlock()
	}()
	return nil
}

// Playing returns the path currently playing, if any.
func (c *CLI) Playing() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return "", false
	}
	return c.current.path, true
}

// Wait blocks until the current playback exits or ctx ends. It returns
// immediately when nothing is playing.
func (c *CLI) Wait(ctx context.Context) error {
	c.mu.Lock()
	pb := c.current
	c.mu.Unlock()
	if pb == nil {
		return nil
	}
	select {
	case <-pb.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop terminates the current playback and waits for the process to exit.
func (c *CLI) Stop() {
	c.mu.Lock()
	pb := c.current
	c.stopLocked()
	c.mu.Unlock()
	if pb != nil {
		<-pb.done
	}
}

func (c *CLI) stopLocked() {
	if c.current == nil {
		return
	}
	c.current.cancel()
	c.current = nil
}

// Nop discards playback requests.
type Nop struct{}

// Play does nothing.
func (Nop) Play(context.Context, string) error { return nil }

// Stop does nothing.
func (Nop) Stop() {}

var (
	_ Player = (*CLI)(nil)
	_ Waiter = (*CLI)(nil)
	_ Player = Nop{}
)
