package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"playbeat/internal/access"
	"playbeat/internal/api"
	"playbeat/internal/catalog"
	"playbeat/internal/rating"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	var genre string
	var query string
	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "List catalog tracks, filtered by genre and search text",
		Args:  cobra.NoArgs,
	}
	asJSON := addJSONFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return ctx.withAccess(cmd, func(a access.Access) error {
			list, err := a.Tracks(cmd.Context(), genre, query)
			if err != nil {
				return err
			}
			if *asJSON {
				return writeJSON(cmd, list)
			}
			out := cmd.OutOrStdout()
			if len(list.Tracks) == 0 {
				fmt.Fprintln(out, "No tracks match")
				return nil
			}
			fmt.Fprint(out, renderTracks(list.Tracks))
			if list.Status != "" {
				fmt.Fprintln(out, list.Status)
			}
			return nil
		})
	}
	cmd.Flags().StringVarP(&genre, "genre", "g", catalog.GenreAll, "Genre to show (all, rock, pop, folk)")
	cmd.Flags().StringVarP(&query, "search", "s", "", "Case-insensitive title or artist substring")
	return cmd
}

func newPlaylistCommand(ctx *commandContext) *cobra.Command {
	playlistCmd := &cobra.Command{
		Use:   "playlist",
		Short: "Show and edit the playlist",
	}
	listJSON := addJSONFlag(playlistCmd)
	playlistCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return ctx.withAccess(cmd, func(a access.Access) error {
			pl, err := a.Playlist(cmd.Context())
			if err != nil {
				return err
			}
			if *listJSON {
				return writeJSON(cmd, pl)
			}
			printPlaylist(cmd, pl)
			return nil
		})
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the playlist",
		Args:  cobra.NoArgs,
		RunE:  playlistCmd.RunE,
	}
	listCmd.Flags().AddFlag(playlistCmd.Flags().Lookup("json"))

	addCmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Append a track to the playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTrackID(args[0])
			if err != nil {
				return err
			}
			return ctx.withAccess(cmd, func(a access.Access) error {
				change, err := a.PlaylistAdd(cmd.Context(), id)
				if err != nil {
					return err
				}
				if change.Changed {
					fmt.Fprintf(cmd.OutOrStdout(), "Added track %d\n", id)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Track %d is already in the playlist\n", id)
				}
				return nil
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a track from the playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTrackID(args[0])
			if err != nil {
				return err
			}
			return ctx.withAccess(cmd, func(a access.Access) error {
				if _, err := a.PlaylistRemove(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed track %d\n", id)
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the playlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withAccess(cmd, func(a access.Access) error {
				if _, err := a.PlaylistClear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Playlist cleared")
				return nil
			})
		},
	}

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Drop playlist ids that are not in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withAccess(cmd, func(a access.Access) error {
				res, err := a.PlaylistPrune(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(res.Removed) == 0 {
					fmt.Fprintln(out, "No orphaned ids")
					return nil
				}
				fmt.Fprintf(out, "Removed %d orphaned ids: %s\n", len(res.Removed), joinInts(res.Removed))
				return nil
			})
		},
	}

	playlistCmd.AddCommand(listCmd, addCmd, removeCmd, clearCmd, pruneCmd)
	return playlistCmd
}

func newPlayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "play <id>",
		Short: "Play a catalog track",
		Long: "Play a catalog track. With a running daemon playback continues in the background;\n" +
			"otherwise the command plays in the foreground until the track ends or is interrupted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTrackID(args[0])
			if err != nil {
				return err
			}
			return ctx.withAccess(cmd, func(a access.Access) error {
				res, err := a.Play(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.NowPlaying)
				if a.Remote() {
					return nil
				}
				// Without a daemon the player belongs to this process.
				waitCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				if err := a.WaitPlayback(waitCtx); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
		},
	}
}

func newNowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Show the now-playing line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withAccess(cmd, func(a access.Access) error {
				pl, err := a.Playlist(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), nowPlayingText(pl))
				return nil
			})
		},
	}
}

func newRateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <id|key> [stars]",
		Short: "Show or set a rating from 1 to 5 stars",
		Long: "Rate a catalog track by id, or any star control by its key (for example track:3).\n" +
			"Without a star count the committed rating is printed.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withAccess(cmd, func(a access.Access) error {
				key, err := ratingKey(cmd.Context(), a, args[0])
				if err != nil {
					return err
				}
				var r api.Rating
				if len(args) == 1 {
					r, err = a.Rating(cmd.Context(), key)
				} else {
					stars, convErr := strconv.Atoi(strings.TrimSpace(args[1]))
					if convErr != nil {
						return fmt.Errorf("invalid star count %q", args[1])
					}
					r, err = a.Rate(cmd.Context(), key, stars)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Key, r.Stars)
				return nil
			})
		},
	}
}

// ratingKey maps a numeric argument onto its catalog track key, rejecting ids
// outside the catalog. Other values are used as keys verbatim.
func ratingKey(ctx context.Context, a access.Access, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	id, err := strconv.Atoi(arg)
	if err != nil {
		if arg == "" {
			return "", errors.New("rating key is empty")
		}
		return arg, nil
	}
	if err := ensureTrack(ctx, a, id); err != nil {
		return "", err
	}
	return rating.TrackKey(id), nil
}

func newRatingsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratings",
		Short: "List committed ratings",
		Args:  cobra.NoArgs,
	}
	asJSON := addJSONFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return ctx.withAccess(cmd, func(a access.Access) error {
			all, err := a.Ratings(cmd.Context())
			if err != nil {
				return err
			}
			if *asJSON {
				return writeJSON(cmd, all)
			}
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No ratings yet")
				return nil
			}
			rows := make([][]string, 0, len(all))
			for _, r := range all {
				rows = append(rows, []string{r.Key, r.Stars, strconv.Itoa(r.Value)})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"Key", "Stars", "Value"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight}))
			return nil
		})
	}
	return cmd
}

func printPlaylist(cmd *cobra.Command, pl api.Playlist) {
	out := cmd.OutOrStdout()
	if len(pl.Entries) == 0 {
		fmt.Fprintln(out, "Playlist is empty")
	} else {
		fmt.Fprint(out, renderTracks(pl.Entries))
	}
	if len(pl.Orphans) > 0 {
		fmt.Fprintf(out, "Skipped unknown ids: %s (run `playbeat playlist prune`)\n", joinInts(pl.Orphans))
	}
	fmt.Fprintln(out, nowPlayingText(pl))
}

func nowPlayingText(pl api.Playlist) string {
	if strings.TrimSpace(pl.NowPlaying) == "" {
		return "Nothing playing"
	}
	return pl.NowPlaying
}

// ensureTrack rejects ids outside the catalog before a rating is stored.
func ensureTrack(ctx context.Context, a access.Access, id int) error {
	list, err := a.Tracks(ctx, catalog.GenreAll, "")
	if err != nil {
		return err
	}
	for _, t := range list.Tracks {
		if t.ID == id {
			return nil
		}
	}
	return fmt.Errorf("%w: %d", api.ErrUnknownTrack, id)
}

func parseTrackID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid track id %q", value)
	}
	return id, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
