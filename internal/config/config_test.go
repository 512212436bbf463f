package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"playbeat/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("PLAYBEAT_API_TOKEN", "")
	t.Setenv("PLAYBEAT_NTFY_TOPIC", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "playbeat")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.APIBind != "127.0.0.1:7490" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if got := cfg.Site.DefaultPlaylist; len(got) != 3 || got[0] != 1 || got[1] != 4 || got[2] != 2 {
		t.Fatalf("unexpected default playlist: %v", got)
	}
	if cfg.Site.ContactDelayMillis != 500 || cfg.Site.QuoteDelayMillis != 300 {
		t.Fatalf("unexpected simulated delays: %d/%d", cfg.Site.ContactDelayMillis, cfg.Site.QuoteDelayMillis)
	}
	if cfg.Player.Command != "ffplay" {
		t.Fatalf("unexpected player command: %q", cfg.Player.Command)
	}
	if cfg.StorePath() != filepath.Join(wantData, "playbeat.db") {
		t.Fatalf("unexpected store path: %q", cfg.StorePath())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, cfg.Paths.MediaDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "playbeat.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Player struct {
			Command string `toml:"command"`
		} `toml:"player"`
		Site struct {
			Title           string `toml:"title"`
			DefaultPlaylist []int  `toml:"default_playlist"`
		} `toml:"site"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Player.Command = "mpv"
	custom.Site.Title = "Night Shift"
	custom.Site.DefaultPlaylist = []int{5, 6}
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Site.Title != "Night Shift" {
		t.Fatalf("expected title override, got %q", cfg.Site.Title)
	}
	if len(cfg.Site.DefaultPlaylist) != 2 || cfg.Site.DefaultPlaylist[0] != 5 {
		t.Fatalf("unexpected default playlist: %v", cfg.Site.DefaultPlaylist)
	}
	if cfg.Paths.MediaDir != filepath.Join(tempDir, "data", "media") && !strings.HasSuffix(cfg.Paths.MediaDir, filepath.Join("playbeat", "media")) {
		t.Fatalf("unexpected media dir: %q", cfg.Paths.MediaDir)
	}
	if len(cfg.Player.Args) != 0 {
		t.Fatalf("expected ffplay args to be dropped for mpv, got %v", cfg.Player.Args)
	}
}

func TestLoadReadsDotEnvNextToConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	// Registers cleanup, then unset so the .env value is the only source.
	t.Setenv("PLAYBEAT_API_TOKEN", "")
	os.Unsetenv("PLAYBEAT_API_TOKEN")

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[site]\ntitle = \"Dotenv\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PLAYBEAT_API_TOKEN=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.APIToken != "from-dotenv" {
		t.Fatalf("expected token from .env, got %q", cfg.Paths.APIToken)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "duplicate default playlist id",
			mutate: func(c *config.Config) { c.Site.DefaultPlaylist = []int{1, 1} },
			want:   "listed twice",
		},
		{
			name:   "non-positive default playlist id",
			mutate: func(c *config.Config) { c.Site.DefaultPlaylist = []int{0} },
			want:   "must be positive",
		},
		{
			name:   "bad bind",
			mutate: func(c *config.Config) { c.Paths.APIBind = "localhost" },
			want:   "api_bind",
		},
		{
			name:   "bad log format",
			mutate: func(c *config.Config) { c.Logging.Format = "xml" },
			want:   "logging.format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if len(cfg.Site.FAQ) == 0 {
		t.Fatal("expected FAQ entries from sample")
	}
}
