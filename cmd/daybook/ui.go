package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/tui"
	"github.com/spf13/cobra"
)

type uiProgram interface {
	Run() (tea.Model, error)
}

// newProgram builds the bubbletea program for m. Tests replace it.
var newProgram = func(m tea.Model, opts ...tea.ProgramOption) uiProgram {
	return tea.NewProgram(m, opts...)
}

// NewUICmd creates the dashboard command with explicit dependencies.
func NewUICmd(client tui.Client) *cobra.Command {
	if client == nil {
		panic("NewUICmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:     "ui",
		Aliases: []string{"tui"},
		Short:   "Open the interactive dashboard",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			colors.DisableStructuredLogging()
			defer colors.EnableStructuredLogging()

			model := tui.New(cmd.Context(), client)
			defer model.Close()

			_, err := newProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}
}
