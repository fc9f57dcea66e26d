package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtside/courtside/internal/app"
)

var (
	cfg         *Config
	application *app.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "courtside",
		Short: "CLI client for the NBA players API",
		Long: `courtside is a terminal client for the NBA players JSON API.

It covers authentication, the paginated player listing with add/edit/delete,
the admin user listing and the team map, either as one-shot commands or as an
interactive dashboard.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			store, err := cfg.NewStore(logger)
			if err != nil {
				// Errors are silenced globally because the controllers
				// already report theirs; this one has no other outlet.
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: cannot open session storage: %v\n", err)
				return err
			}

			application = app.New(app.Config{
				BaseURL: cfg.ServerURL,
				Store:   store,
				Format:  cfg.Output,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
				ErrOut:  cmd.ErrOrStderr(),
				Logger:  logger,
			})
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "API base URL (env: COURTSIDE_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "Session state directory (env: COURTSIDE_STATE_DIR)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for shared session state (env: COURTSIDE_REDIS_URL)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newPlayersCmd())
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newMapCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newDashboardCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
