// Command daybook is the command line and terminal dashboard for the daybook stores.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/daybook-app/daybook/cmd"
	"github.com/daybook-app/daybook/internal/app"
	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/domain"
	derrors "github.com/daybook-app/daybook/internal/errors"
	"github.com/daybook-app/daybook/internal/logging"
	"github.com/daybook-app/daybook/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}

	args := os.Args[1:]
	code := run(args, func() error { return execute(context.Background(), args) })

	_ = logging.ShutdownGlobal()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
// The dashboard owns the terminal, so it gets no structured startup logs.
func run(args []string, execute func() error) int {
	ui := isUICommand(args)
	if ui {
		colors.DisableStructuredLogging()
	} else {
		colors.StructuredInfo("cli", "startup", "started", nil, "", map[string]interface{}{"args": len(args)})
	}

	if err := execute(); err != nil {
		if !ui {
			colors.StructuredError("cli", "startup", "failed", err, "", nil)
		}
		return 1
	}
	if !ui {
		colors.StructuredInfo("cli", "startup", "completed", nil, "", nil)
	}
	return 0
}

func isUICommand(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if len(arg) > 0 && arg[0] == '-' {
			continue
		}
		return arg == "ui"
	}
	return false
}

// execute opens the application, runs the command tree and reports the
// notifications the command emitted on the console.
func execute(ctx context.Context, args []string) error {
	a, err := app.New(app.Options{})
	if err != nil {
		colors.Error(err.Error())
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			colors.Debug(fmt.Sprintf("close storage: %v", closeErr))
		}
	}()

	root := newRootCmd(a)
	root.SetArgs(args)
	err = root.ExecuteContext(ctx)
	emitted := a.Notifications().List()
	if isUICommand(args) {
		emitted = nil
	}
	reportOutcome(derrors.NewCLIHandler(), emitted, err)
	return err
}

// newRootCmd registers every subcommand against a.
func newRootCmd(a *app.App) *cobra.Command {
	root := cmd.NewRootCmd()
	root.AddCommand(
		NewTodoCmd(a),
		NewSettingsCmd(a),
		NewWeatherCmd(a),
		NewStatusCmd(a),
		NewStatusPanelCmd(a),
		NewFollowCmd(a),
		NewUICmd(a),
		NewConfigCmd(),
		NewMigrateCmd(),
		NewVersionCmd(buildInfo{}),
	)
	return root
}

// reportOutcome prints emitted notifications and, when none of them was an
// error, the user message of err.
func reportOutcome(h derrors.ErrorHandler, emitted []domain.Notification, err error) {
	errorShown := false
	for _, n := range emitted {
		switch n.Type {
		case domain.NotificationError:
			h.Error(n.Message)
			errorShown = true
		case domain.NotificationInfo:
			h.Info(n.Message)
		default:
			h.Success(n.Message)
		}
	}
	if err != nil && !errorShown {
		derrors.Report(h, err)
	}
}

type buildInfo struct{}

func (buildInfo) Version() string { return version.String() }
