package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"playbeat/internal/access"
	"playbeat/internal/api"
	"playbeat/internal/clock"
	"playbeat/internal/site"
	"playbeat/internal/theme"
)

func newThemeCommand(ctx *commandContext) *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the applied theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withAccess(cmd, func(a access.Access) error {
				t, err := a.Theme(cmd.Context(), theme.SystemPreference())
				if err != nil {
					return err
				}
				printTheme(cmd, t)
				return nil
			})
		},
	}
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the applied theme",
		Args:  cobra.NoArgs,
		RunE:  themeCmd.RunE,
	}
	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withAccess(cmd, func(a access.Access) error {
				t, err := a.ToggleTheme(cmd.Context(), theme.SystemPreference())
				if err != nil {
					return err
				}
				printTheme(cmd, t)
				return nil
			})
		},
	}
	themeCmd.AddCommand(showCmd, toggleCmd)
	return themeCmd
}

func printTheme(cmd *cobra.Command, t api.Theme) {
	fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s (toggle shows %q)\n", t.Theme, t.Label)
}

func newQuoteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Load a random music quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withAccess(cmd, func(a access.Access) error {
				q, err := a.Quote(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), q.Text)
				return nil
			})
		},
	}
}

func newContactCommand(ctx *commandContext) *cobra.Command {
	var req api.ContactRequest
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Submit the contact form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withAccess(cmd, func(a access.Access) error {
				resp, err := a.Contact(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Status)
				if !resp.Sent {
					return errors.New("contact form not sent")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Your email address")
	cmd.Flags().StringVar(&req.Message, "message", "", "Message text")
	return cmd
}

func newClockCommand() *cobra.Command {
	var count int
	var interval time.Duration
	cmd := &cobra.Command{
		Use:         "clock",
		Short:       "Print the live date and time",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			printed := 0
			err := clock.Run(cmd.Context(), interval, nil, func(r clock.Reading) bool {
				fmt.Fprintf(out, "%s  %s\n", r.Date, r.Time)
				printed++
				return count <= 0 || printed < count
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of ticks to print (0 runs until interrupted)")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Time between ticks")
	return cmd
}

func newGreetCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "greet [name]",
		Short:       "Print the visitor greeting",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			fmt.Fprintln(cmd.OutOrStdout(), site.Greeting(strings.TrimSpace(name)))
			return nil
		},
	}
}
