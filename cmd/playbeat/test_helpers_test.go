package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"playbeat/internal/config"
	"playbeat/internal/daemon"
	"playbeat/internal/ipc"
	"playbeat/internal/logging"
	"playbeat/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	harness    *testsupport.Harness
	daemon     *daemon.Daemon
	server     *ipc.Server
	configPath string
	baseDir    string
	cancel     context.CancelFunc
}

// setupOfflineEnv writes a config file without starting a daemon.
func setupOfflineEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	configPath := filepath.Join(homeDir, ".config", "playbeat", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

// setupCLITestEnv starts a daemon with recording fakes behind the IPC socket
// the CLI dials.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	env := setupOfflineEnv(t)

	logger := logging.NewNop()
	env.harness = testsupport.NewApp(t, env.cfg)
	d, err := daemon.New(env.cfg, env.harness.App, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv, err := ipc.NewServer(ctx, env.cfg.SocketPath(), d, logger)
	if err != nil {
		cancel()
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping CLI IPC test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	time.Sleep(50 * time.Millisecond)

	env.daemon = d
	env.server = srv
	env.cancel = cancel
	t.Cleanup(func() {
		cancel()
		srv.Close()
		d.Stop()
	})
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
media_dir = %q
log_dir = %q
api_bind = %q

[player]
command = %q

[site]
contact_delay_ms = 0
quote_delay_ms = 0
`,
		cfg.Paths.DataDir,
		cfg.Paths.MediaDir,
		cfg.Paths.LogDir,
		cfg.Paths.APIBind,
		cfg.Player.Command,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
