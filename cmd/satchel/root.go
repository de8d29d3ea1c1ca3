package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"satchel/internal/app"
)

func newRootCmd() *cobra.Command {
	opts := &app.Options{}

	cmd := &cobra.Command{
		Use:           "satchel",
		Short:         "Terminal clients for the coursework web apps",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Open the home menu
  satchel

  # Jump straight into a client
  satchel mail
  satchel feed
  satchel finance
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => home menu.
			return app.Run(cmd.Context(), *opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", envOr("SATCHEL_CONFIG", ""), "Path to the config file (default: ~/.config/satchel/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.PrefsPath, "prefs", envOr("SATCHEL_PREFS", ""), "Path to the preferences file (default: ~/.config/satchel/prefs.toml)")

	cmd.AddCommand(newMailCmd(opts))
	cmd.AddCommand(newFeedCmd(opts))
	cmd.AddCommand(newFinanceCmd(opts))

	return cmd
}

func newMailCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "mail",
		Short: "Open the mail client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := *opts
			o.Start = app.StartMail
			return app.Run(cmd.Context(), o)
		},
	}
}

func newFeedCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Open the social feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := *opts
			o.Start = app.StartFeed
			return app.Run(cmd.Context(), o)
		},
	}
}

func newFinanceCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "finance",
		Short: "Open the finance dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := *opts
			o.Start = app.StartFinance
			return app.Run(cmd.Context(), o)
		},
	}
}

func envOr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}
