package main

import (
	"fmt"
	"io"

	"github.com/daybook-app/daybook/internal/app"
	"github.com/daybook-app/daybook/internal/format"
	"github.com/daybook-app/daybook/internal/status"
	"github.com/spf13/cobra"
)

type statusClient interface {
	WriteStatus(w io.Writer, formatValue string) error
}

type statusPanelClient interface {
	Dashboard() format.StatusData
}

// NewStatusCmd creates the status command with explicit dependencies.
func NewStatusCmd(client statusClient) *cobra.Command {
	if client == nil {
		panic("NewStatusCmd: client dependency cannot be nil")
	}

	var formatFlag string

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the dashboard summary",
		Long: `Show the dashboard summary: greeting, todo progress, city, theme and language.

USAGE:
    daybook status [--format summary|json]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.WriteStatus(cmd.OutOrStdout(), formatFlag)
		},
	}
	statusCmd.Flags().StringVar(&formatFlag, "format", app.StatusSummary, "Output format: summary or json")
	return statusCmd
}

// NewStatusPanelCmd creates the status-panel command with explicit dependencies.
func NewStatusPanelCmd(client statusPanelClient) *cobra.Command {
	if client == nil {
		panic("NewStatusPanelCmd: client dependency cannot be nil")
	}

	var formatFlag string
	var enabledFlag bool

	panelCmd := &cobra.Command{
		Use:   "status-panel",
		Short: "One-line todo indicator for status bars",
		Long: `Print a one-line todo indicator for tmux status-right or a shell prompt.

USAGE:
    daybook status-panel [--format compact|detailed|count-only] [--enabled=false]

Defaults come from status_format, status_enabled and status_colors in the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := status.OptionsFromConfig()
			if cmd.Flags().Changed("format") {
				opts.Format = formatFlag
			}
			if cmd.Flags().Changed("enabled") {
				opts.Enabled = enabledFlag
			}
			out, err := status.RunStatusPanel(client.Dashboard().Todos, opts)
			if err != nil {
				return err
			}
			if out != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
	panelCmd.Flags().StringVar(&formatFlag, "format", status.FormatCompact, "Panel format: compact, detailed, count-only")
	panelCmd.Flags().BoolVar(&enabledFlag, "enabled", true, "Print the indicator")
	return panelCmd
}
