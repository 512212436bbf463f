package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"playbeat/internal/api"
	"playbeat/internal/catalog"
	"playbeat/internal/media"
	"playbeat/internal/notifications"
	"playbeat/internal/player"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification to the configured ntfy topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Notifications.NtfyTopic) == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Notifications not configured (set notifications.ntfy_topic)")
				return nil
			}
			if err := notifications.NewService(cfg).TestNotification(cmd.Context()); err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}

func newMediaCommand(ctx *commandContext) *cobra.Command {
	mediaCmd := &cobra.Command{
		Use:   "media",
		Short: "Inspect local media files",
	}
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify every catalog track has a file with matching tags",
		Args:  cobra.NoArgs,
	}
	asJSON := addJSONFlag(checkCmd)
	checkCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return err
		}
		resolver := player.NewCLI(player.WithMediaDir(cfg.Paths.MediaDir))
		reports := media.Check(catalog.Default().Tracks(), resolver)
		if *asJSON {
			return writeJSON(cmd, reports)
		}

		rows := make([][]string, 0, len(reports))
		failed := 0
		for _, r := range reports {
			state := "ok"
			switch {
			case !r.Present:
				state = "missing"
			case len(r.Mismatches) > 0:
				state = "mismatch: " + strings.Join(r.Mismatches, ", ")
			case !r.Tagged:
				state = "untagged"
			}
			if !r.OK() {
				failed++
			}
			rows = append(rows, []string{strconv.Itoa(r.TrackID), r.Path, r.Tags.Format, state})
		}
		out := cmd.OutOrStdout()
		fmt.Fprint(out, renderTable([]string{"ID", "Path", "Format", "State"}, rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}))
		fmt.Fprintf(out, "%d/%d tracks ready\n", len(reports)-failed, len(reports))
		return nil
	}
	importCmd := &cobra.Command{
		Use:   "import <id> <file>",
		Short: "Copy an audio file into the media directory for a track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			id, err := parseTrackID(args[0])
			if err != nil {
				return err
			}
			track, ok := catalog.Default().Find(id)
			if !ok {
				return fmt.Errorf("%w: %d", api.ErrUnknownTrack, id)
			}
			resolver := player.NewCLI(player.WithMediaDir(cfg.Paths.MediaDir))
			report, err := media.Import(args[1], track, resolver)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %s to %s\n", track.Label(), report.Path)
			for _, mismatch := range report.Mismatches {
				fmt.Fprintf(out, "warning: tag %s\n", mismatch)
			}
			return nil
		},
	}
	mediaCmd.AddCommand(checkCmd, importCmd)
	return mediaCmd
}
