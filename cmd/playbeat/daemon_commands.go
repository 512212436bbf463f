package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"playbeat/internal/daemonctl"
	"playbeat/internal/daemonrun"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the playbeat daemon in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}

			result, err := daemonctl.EnsureStarted(
				ctx.socketPath(),
				exe,
				daemonLaunchOptions(ctx),
				10*time.Second,
			)
			if err != nil {
				return err
			}

			if result.Launched {
				fmt.Fprintln(stdout, "Daemon not running, launching...")
			}
			switch result.State {
			case daemonctl.StartStateStarted:
				fmt.Fprintln(stdout, "Daemon started")
			case daemonctl.StartStateAlreadyRunning:
				fmt.Fprintln(stdout, "Daemon already running")
			}
			if result.Addr != "" {
				fmt.Fprintf(stdout, "Site: http://%s/\n", result.Addr)
			}
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the playbeat daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			result, err := daemonctl.StopAndTerminate(ctx.configValue(), 5*time.Second)
			if errors.Is(err, daemonctl.ErrDaemonNotRunning) {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			if err != nil {
				return err
			}
			if !result.StopAcknowledged {
				fmt.Fprintln(stdout, "Stop request sent")
			}
			if result.ForcedKill && result.PID > 0 {
				fmt.Fprintf(stdout, "Killed unresponsive daemon process (pid %d)\n", result.PID)
			}
			fmt.Fprintln(stdout, "Daemon stopped")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon, site, and dependency status",
	}
	statusJSON := addJSONFlag(statusCmd)
	statusCmd.RunE = func(cmd *cobra.Command, args []string) error {
		snap, err := daemonctl.BuildStatusSnapshot(cmd.Context(), ctx.configValue())
		if err != nil {
			return err
		}
		if *statusJSON {
			return writeJSON(cmd, snap.Status)
		}
		stdout := cmd.OutOrStdout()
		colorize := shouldColorize(stdout)
		printSection(stdout, "System Status", daemonLines(snap.Status, colorize), colorize)
		printSection(stdout, "Site", siteLines(snap.Status, colorize), colorize)
		printSection(stdout, "Dependencies", dependencyLines(snap.Status.Dependencies, colorize), colorize)
		printSection(stdout, "Paths", preflightLines(snap.Preflight, colorize), colorize)
		return nil
	}

	return []*cobra.Command{startCmd, stopCmd, statusCmd}
}

func newServeCommand(ctx *commandContext) *cobra.Command {
	var logLevel string
	var foreground bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the playbeat daemon in the foreground",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return daemonrun.Run(cmd.Context(), cfg, daemonrun.Options{
				LogLevel:   strings.TrimSpace(logLevel),
				Foreground: foreground,
			})
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	cmd.Flags().BoolVar(&foreground, "no-log-file", false, "Log to stderr only")
	return cmd
}

func printSection(w io.Writer, title string, lines []string, colorize bool) {
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(w, line)
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}

func daemonExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return exe, nil
}

func daemonLaunchOptions(ctx *commandContext) daemonctl.LaunchOptions {
	return daemonctl.LaunchOptions{ConfigPath: ctx.configPath()}
}
