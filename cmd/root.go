// Package cmd holds the root command of the daybook binary.
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/version"
	"github.com/spf13/cobra"
)

const description = "A personal daybook: todos, weather and your profile in one place."

// commandOrder is the order subcommands are listed in the help text.
var commandOrder = []string{
	"todo",
	"settings",
	"weather",
	"status",
	"status-panel",
	"follow",
	"ui",
	"config",
	"migrate",
	"help",
	"version",
}

// NewRootCmd builds a root command without subcommands.
func NewRootCmd() *cobra.Command {
	var debug, quiet bool

	root := &cobra.Command{
		Use:           "daybook",
		Short:         description,
		Long:          description,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Changed("debug") {
				colors.SetDebug(debug)
			}
			if cmd.Flags().Changed("quiet") {
				colors.SetQuiet(quiet)
			}
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Print debug output and structured logs to stderr")
	root.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress informational output")

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cmd.Long)
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			_, _ = fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			return
		}
		PrintHelp(cmd, cmd.OutOrStdout())
	})
	root.SetHelpCommand(&cobra.Command{
		Use:   "help",
		Short: "Show this help message",
		Run: func(cmd *cobra.Command, args []string) {
			PrintHelp(cmd.Root(), cmd.OutOrStdout())
		},
	})
	return root
}

// PrintHelp writes the top-level help text listing commands in a fixed order.
func PrintHelp(root *cobra.Command, w io.Writer) {
	root.InitDefaultHelpCmd()
	var cmdLines []string
	for _, name := range commandOrder {
		found := findCommand(root, name)
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-20s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`daybook v%s

%s

USAGE:
    daybook [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --debug         Print debug output
    --quiet         Suppress informational output
    -h, --help      Show help message
`, root.Version, description, strings.Join(cmdLines, "\n"))
	_, _ = fmt.Fprint(w, helpText)
}

func findCommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
