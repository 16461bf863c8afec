package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resume-goat/resume-goat/internal/server"
	"github.com/resume-goat/resume-goat/internal/store"
)

func newServeCmd(opts *options) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the resume-goat HTTP server.

The server provides:
  - JSON API for recording applications and status changes
  - Dashboard for viewing results
  - Prometheus metrics and a health check endpoint

Example:
  rgoat serve --port 8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				opts.cfg.Port = port
			}

			return opts.withStore(func(s *store.SQLiteStore) error {
				srv := server.New(s, opts.cfg.Port, opts.tokenFilePath(), opts.logger)

				out := cmd.OutOrStdout()
				fmt.Fprintln(out)
				fmt.Fprintf(out, "resume-goat running on http://localhost:%d\n", opts.cfg.Port)
				fmt.Fprintf(out, "Dashboard: %s/dashboard?token=%s\n", opts.cfg.ServerURL, srv.Token())
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Press Ctrl+C to stop")

				return srv.Start()
			})
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on (overrides config)")

	return cmd
}
