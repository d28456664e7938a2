package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/daybook-app/daybook/internal/app"
	"github.com/daybook-app/daybook/internal/colors"
	"github.com/spf13/cobra"
)

type followClient interface {
	Follow(ctx context.Context, opts app.FollowOptions) error
}

// NewFollowCmd creates the follow command with explicit dependencies.
func NewFollowCmd(client followClient) *cobra.Command {
	if client == nil {
		panic("NewFollowCmd: client dependency cannot be nil")
	}

	var jsonOutput bool

	followCmd := &cobra.Command{
		Use:   "follow",
		Short: "Watch storage for changes made by other processes",
		Long: `Watch the storage backend and print a line whenever another process
changes the settings, the todo list, the default city or the view preferences.

USAGE:
    daybook follow [--json]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			colors.LogInfo("Watching for changes (Ctrl+C to stop)...")
			return client.Follow(ctx, app.FollowOptions{
				Output: cmd.OutOrStdout(),
				JSON:   jsonOutput,
			})
		},
	}
	followCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print one JSON line per change")
	return followCmd
}
