package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/partysync/internal/app"
	"github.com/five82/partysync/internal/config"
	"github.com/five82/partysync/internal/party"
	"github.com/five82/partysync/internal/prefs"
	"github.com/five82/partysync/internal/ui"
)

type rootFlags struct {
	configPath string
	prefsPath  string
}

func (f *rootFlags) prefsFile() string {
	if f.prefsPath != "" {
		return f.prefsPath
	}
	return config.DefaultPrefsPath()
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "partysync",
		Short:         "Matchmaking party client",
		Long:          "partysync keeps a local view of your matchmaking party in step with the coordinator and lets you queue, invite and chat from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/partysync/config.toml)")
	root.PersistentFlags().StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/partysync/prefs.toml)")

	root.AddCommand(newRunCmd(flags), newPrefsCmd(flags))
	return root
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	var headless bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start a party session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: flags.configPath,
				PrefsPath:  flags.prefsPath,
				Headless:   headless,
			})
		},
	}
	cmd.Flags().BoolVar(&headless, "headless", false, "run without the terminal UI")
	return cmd
}

func newPrefsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := prefs.Open(flags.prefsFile()).Prefs()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "theme             %s\n", p.Theme)
			fmt.Fprintf(out, "join_request_mode %s\n", p.JoinRequestMode)
			fmt.Fprintf(out, "ignore_invites    %t\n", p.IgnoreInvites)
			return nil
		},
	}

	joinMode := &cobra.Command{
		Use:       "join-mode <open|request|closed>",
		Short:     "Set how join requests from friends are handled",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"open", "request", "closed"},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := party.ParseJoinRequestMode(strings.ToLower(args[0]))
			if err != nil {
				return err
			}
			if err := prefs.Open(flags.prefsFile()).SetJoinRequestMode(mode); err != nil {
				return fmt.Errorf("save prefs: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "join_request_mode set to %s\n", mode)
			return nil
		},
	}

	ignore := &cobra.Command{
		Use:   "ignore-invites <true|false>",
		Short: "Decline party invites automatically",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("ignore-invites: %w", err)
			}
			if err := prefs.Open(flags.prefsFile()).SetIgnoreInvites(v); err != nil {
				return fmt.Errorf("save prefs: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ignore_invites set to %t\n", v)
			return nil
		},
	}

	theme := &cobra.Command{
		Use:   "theme <name>",
		Short: "Set the UI theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := ui.ThemeNames()
			if !slices.Contains(names, args[0]) {
				return fmt.Errorf("unknown theme %q (available: %s)", args[0], strings.Join(names, ", "))
			}
			if err := prefs.Open(flags.prefsFile()).SetTheme(args[0]); err != nil {
				return fmt.Errorf("save prefs: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(show, joinMode, ignore, theme)
	return cmd
}
