package playlist

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"playbeat/internal/catalog"
	"playbeat/internal/feedback"
	"playbeat/internal/logging"
	"playbeat/internal/player"
	"playbeat/internal/store"
)

const (
	// KeyPlaylist stores the ordered track ids.
	KeyPlaylist = "playbeat:playlist"
	// KeyCurrent stores the id of the last played track.
	KeyCurrent = "playbeat:currentId"

	// TargetPlaylist is the page region bumped by playlist mutations.
	TargetPlaylist = "playlist"
	// TargetNowPlaying is the page region bumped when playback starts.
	TargetNowPlaying = "now-playing"
)

// Options wires optional collaborators. Nil fields get silent defaults.
type Options struct {
	Default []int
	Player  player.Player
	Cue     feedback.Cue
	Logger  *slog.Logger
}

// Manager guards the playlist state.
type Manager struct {
	mu      sync.Mutex
	kv      *store.KV
	catalog *catalog.Catalog
	player  player.Player
	cue     feedback.Cue
	logger  *slog.Logger

	ids        []int
	current    int
	hasCurrent bool
	nowPlaying string
}

// New loads the playlist and current id from kv.
func New(ctx context.Context, kv *store.KV, cat *catalog.Catalog, opts Options) *Manager {
	m := &Manager{
		kv:      kv,
		catalog: cat,
		player:  opts.Player,
		cue:     feedback.OrNop(opts.Cue),
		logger:  logging.NewComponentLogger(opts.Logger, "playlist"),
	}
	if m.player == nil {
		m.player = player.Nop{}
	}

	def := opts.Default
	if def == nil {
		def = []int{}
	}
	m.ids = dedupe(store.Load(ctx, kv, KeyPlaylist, slices.Clone(def)))

	if played := store.Load[*int](ctx, kv, KeyCurrent, nil); played != nil {
		m.current, m.hasCurrent = *played, true
		if track, ok := cat.Find(*played); ok {
			m.nowPlaying = nowPlayingLabel(track)
		}
	} else if len(m.ids) > 0 {
		m.current, m.hasCurrent = m.ids[0], true
	}
	return m
}

func dedupe(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// IDs returns the stored ids in order, including orphans.
func (m *Manager) IDs() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.ids)
}

// Contains reports whether id is in the playlist.
func (m *Manager) Contains(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Contains(m.ids, id)
}

// Entries resolves the playlist against the catalog, skipping orphaned ids.
func (m *Manager) Entries() []catalog.Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]catalog.Track, 0, len(m.ids))
	for _, id := range m.ids {
		if track, ok := m.catalog.Find(id); ok {
			out = append(out, track)
		}
	}
	return out
}

// Orphans returns stored ids that do not resolve in the catalog.
func (m *Manager) Orphans() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orphansLocked()
}

func (m *Manager) orphansLocked() []int {
	var out []int
	for _, id := range m.ids {
		if _, ok := m.catalog.Find(id); !ok {
			out = append(out, id)
		}
	}
	return out
}

// Current returns the remembered track id.
func (m *Manager) Current() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.hasCurrent
}

// NowPlaying returns the label of the last played track, restored from the
// stored current id, or "" when nothing has been played.
func (m *Manager) NowPlaying() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nowPlaying
}

// Add appends id when absent and reports whether the playlist changed.
func (m *Manager) Add(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.ids, id) {
		return false, nil
	}
	next := append(slices.Clone(m.ids), id)
	if err := m.persistLocked(ctx, next); err != nil {
		return false, err
	}
	m.logger.Debug("track added", logging.Int(logging.FieldTrackID, id))
	m.cue.Cue(ctx, TargetPlaylist)
	return true, nil
}

// Remove drops every occurrence of id. Removing an absent id still persists
// and cues.
func (m *Manager) Remove(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := slices.DeleteFunc(slices.Clone(m.ids), func(v int) bool { return v == id })
	if err := m.persistLocked(ctx, next); err != nil {
		return err
	}
	m.logger.Debug("track removed", logging.Int(logging.FieldTrackID, id))
	m.cue.Cue(ctx, TargetPlaylist)
	return nil
}

// Clear empties the playlist.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.persistLocked(ctx, []int{}); err != nil {
		return err
	}
	m.logger.Debug("playlist cleared")
	m.cue.Cue(ctx, TargetPlaylist)
	return nil
}

// Prune removes orphaned ids and returns them.
func (m *Manager) Prune(ctx context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orphans := m.orphansLocked()
	if len(orphans) == 0 {
		return nil, nil
	}
	next := slices.DeleteFunc(slices.Clone(m.ids), func(v int) bool { return slices.Contains(orphans, v) })
	if err := m.persistLocked(ctx, next); err != nil {
		return nil, err
	}
	m.logger.Info("orphaned playlist entries pruned", logging.Any("track_ids", orphans))
	m.cue.Cue(ctx, TargetPlaylist)
	return orphans, nil
}

// Play makes id current and starts playback. Unknown ids are ignored and
// reported as false. Player failures are logged, never returned.
func (m *Manager) Play(ctx context.Context, id int) (catalog.Track, bool, error) {
	track, ok := m.catalog.Find(id)
	if !ok {
		return catalog.Track{}, false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.kv.Save(ctx, KeyCurrent, id); err != nil {
		return catalog.Track{}, false, fmt.Errorf("remember current track: %w", err)
	}
	m.current, m.hasCurrent = id, true

	if err := m.player.Play(ctx, track.URL); err != nil {
		m.logger.Debug("playback failed",
			logging.Int(logging.FieldTrackID, id),
			logging.String("url", track.URL),
			logging.Error(err),
		)
	}

	m.nowPlaying = nowPlayingLabel(track)
	feedback.Bump(ctx, TargetNowPlaying)
	return track, true, nil
}

func nowPlayingLabel(track catalog.Track) string {
	return "Now Playing: " + track.Label()
}

func (m *Manager) persistLocked(ctx context.Context, next []int) error {
	if next == nil {
		next = []int{}
	}
	if err := m.kv.Save(ctx, KeyPlaylist, next); err != nil {
		return fmt.Errorf("persist playlist: %w", err)
	}
	m.ids = next
	return nil
}
