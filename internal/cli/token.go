package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newTokenCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Show dashboard URL with access token",
		Long: `Show the dashboard URL with your access token.

Use this when you've scrolled past the startup message.

Example:
  rgoat token`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(opts.tokenFilePath())
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("no server running. Start with: rgoat serve")
				}
				return fmt.Errorf("failed to read token file: %w", err)
			}

			token := strings.TrimSpace(string(data))
			if token == "" {
				return fmt.Errorf("token file is empty. Restart the server with: rgoat serve")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Dashboard: %s/dashboard?token=%s\n", opts.cfg.ServerURL, token)
			return nil
		},
	}
}
