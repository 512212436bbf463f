package ipc_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"playbeat/internal/api"
	"playbeat/internal/daemon"
	"playbeat/internal/ipc"
	"playbeat/internal/logging"
	"playbeat/internal/rating"
	"playbeat/internal/testsupport"
)

type fixture struct {
	daemon  *daemon.Daemon
	harness *testsupport.Harness
	client  *ipc.Client
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	h := testsupport.NewApp(t, cfg)
	logger := logging.NewNop()
	d, err := daemon.New(cfg, h.App, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Stop()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	socket := filepath.Join(cfg.Paths.DataDir, "ipc.sock")
	srv, err := ipc.NewServer(ctx, socket, d, logger)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping IPC server test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(func() {
		srv.Close()
	})

	time.Sleep(50 * time.Millisecond)

	client, err := ipc.Dial(socket)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() {
		client.Close()
	})
	return fixture{daemon: d, harness: h, client: client}
}

func TestIPCServerClient(t *testing.T) {
	f := newFixture(t)
	client := f.client

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Tracks != 6 {
		t.Fatalf("expected 6 tracks, got %d", status.Tracks)
	}
	if status.PlaylistLength != 3 {
		t.Fatalf("expected default playlist of 3, got %d", status.PlaylistLength)
	}

	list, err := client.Tracks("rock", "queen")
	if err != nil {
		t.Fatalf("Tracks: %v", err)
	}
	if len(list.Tracks) != 1 || list.Tracks[0].ID != 5 {
		t.Fatalf("unexpected filtered tracks: %+v", list.Tracks)
	}

	change, err := client.PlaylistAdd(5)
	if err != nil {
		t.Fatalf("PlaylistAdd: %v", err)
	}
	if !change.Changed || len(change.Playlist.IDs) != 4 {
		t.Fatalf("unexpected add result: %+v", change)
	}
	again, err := client.PlaylistAdd(5)
	if err != nil {
		t.Fatalf("PlaylistAdd duplicate: %v", err)
	}
	if again.Changed {
		t.Fatal("expected duplicate add to be a no-op")
	}

	pl, err := client.PlaylistRemove(4)
	if err != nil {
		t.Fatalf("PlaylistRemove: %v", err)
	}
	want := []int{1, 2, 5}
	if len(pl.IDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, pl.IDs)
	}
	for i := range want {
		if pl.IDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, pl.IDs)
		}
	}

	played, err := client.Play(2)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if played.Track.ID != 2 || played.NowPlaying == "" {
		t.Fatalf("unexpected play result: %+v", played)
	}
	if got := f.harness.Player.Played(); len(got) != 1 {
		t.Fatalf("expected one playback, got %v", got)
	}

	cleared, err := client.PlaylistClear()
	if err != nil {
		t.Fatalf("PlaylistClear: %v", err)
	}
	if len(cleared.IDs) != 0 {
		t.Fatalf("expected empty playlist, got %v", cleared.IDs)
	}
}

func TestIPCRatingsAndTheme(t *testing.T) {
	client := newFixture(t).client

	key := rating.TrackKey(3)
	got, err := client.Rate(key, 4, "")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if got.Value != 4 {
		t.Fatalf("expected rating 4, got %+v", got)
	}
	if _, err := client.Rate(key, 3, "Tab"); err != nil {
		t.Fatalf("Rate with ignored key: %v", err)
	}
	read, err := client.Rating(key)
	if err != nil {
		t.Fatalf("Rating: %v", err)
	}
	if read.Value != 4 {
		t.Fatalf("expected ignored key to keep rating 4, got %d", read.Value)
	}
	all, err := client.Ratings()
	if err != nil {
		t.Fatalf("Ratings: %v", err)
	}
	if len(all) != 1 || all[0].Key != key {
		t.Fatalf("unexpected ratings: %+v", all)
	}

	current, err := client.Theme("dark")
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if current.Theme != "dark" {
		t.Fatalf("expected system preference dark, got %+v", current)
	}
	toggled, err := client.ThemeToggle("dark")
	if err != nil {
		t.Fatalf("ThemeToggle: %v", err)
	}
	if toggled.Theme != "light" {
		t.Fatalf("expected light after toggle, got %+v", toggled)
	}
}

func TestIPCRestoresSentinelErrors(t *testing.T) {
	client := newFixture(t).client

	if _, err := client.PlaylistAdd(99); !errors.Is(err, api.ErrUnknownTrack) {
		t.Fatalf("expected ErrUnknownTrack, got %v", err)
	}
	if _, err := client.Play(99); !errors.Is(err, api.ErrUnknownTrack) {
		t.Fatalf("expected ErrUnknownTrack from Play, got %v", err)
	}
	if _, err := client.Rate(rating.TrackKey(1), 9, ""); !errors.Is(err, rating.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
}

func TestIPCQuoteContactShutdown(t *testing.T) {
	f := newFixture(t)
	client := f.client

	quote, err := client.Quote()
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if quote.Text == "" {
		t.Fatal("expected quote text")
	}

	missing, err := client.Contact(api.ContactRequest{Name: "Ada"})
	if err != nil {
		t.Fatalf("Contact: %v", err)
	}
	if missing.Sent {
		t.Fatalf("expected incomplete form to be rejected, got %+v", missing)
	}
	sent, err := client.Contact(api.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	if err != nil {
		t.Fatalf("Contact: %v", err)
	}
	if !sent.Sent {
		t.Fatalf("expected form to be sent, got %+v", sent)
	}

	resp, err := client.Shutdown()
	if err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !resp.Accepted {
		t.Fatal("expected shutdown to be accepted")
	}
	select {
	case <-f.daemon.ShutdownRequested():
	case <-time.After(time.Second):
		t.Fatal("expected daemon shutdown signal")
	}
}
