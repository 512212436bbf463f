package app_test

import (
	"context"
	"slices"
	"testing"

	"playbeat/internal/app"
	"playbeat/internal/testsupport"
)

func TestNewPersistsAcrossReopen(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()
	opts := app.Options{Player: &testsupport.FakePlayer{}, Bell: &testsupport.Bell{}}

	first, err := app.New(ctx, cfg, opts)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	if got := first.Playlist.IDs(); !slices.Equal(got, []int{1, 4, 2}) {
		t.Fatalf("initial playlist = %v, want [1 4 2]", got)
	}
	if err := first.Playlist.Remove(ctx, 4); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if first.StorePath() != cfg.StorePath() {
		t.Fatalf("StorePath = %q, want %q", first.StorePath(), cfg.StorePath())
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := app.New(ctx, cfg, opts)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if got := second.Playlist.IDs(); !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("reopened playlist = %v, want [1 2]", got)
	}
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := app.New(context.Background(), nil, app.Options{}); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestDependenciesReportPlayer(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	h := testsupport.NewApp(t, cfg)

	statuses := h.App.Dependencies()
	if len(statuses) != 1 {
		t.Fatalf("expected one dependency, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("expected stubbed player to be available: %+v", statuses[0])
	}
	if h.App.StorePath() != "" {
		t.Fatalf("memory-backed app should report no store path, got %q", h.App.StorePath())
	}
}
