package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/resume-goat/resume-goat/internal/config"
)

// options carries global settings resolved before any subcommand runs.
type options struct {
	configPath string
	dbPath     string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "rgoat",
		Short: "Resume Goat - A/B test your job application materials",
		Long: `Resume Goat tracks which version of your resume or cover letter each
application used and tells you, with a two-proportion z-test, which one
gets more responses.

Single Go binary, embedded SQLite.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database path (default ./rgoat.db)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newCreateCmd(opts),
		newListCmd(opts),
		newAssignCmd(opts),
		newStatusCmd(opts),
		newResultsCmd(opts),
		newWinnerCmd(opts),
		newDeleteCmd(opts),
		newExportCmd(opts),
		newServeCmd(opts),
		newTokenCmd(opts),
	)

	return rootCmd
}

// resolve layers config file, environment and explicit flags, in that order.
func (o *options) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = o.dbPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = cfg.NewLogger()
	return nil
}

func Execute() error {
	return newRootCmd().Execute()
}
