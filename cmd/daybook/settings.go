package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/format"
	"github.com/spf13/cobra"
)

type settingsClient interface {
	Profile() domain.UserSettings
	Dashboard() format.StatusData
	SetName(ctx context.Context, name string) error
	SetTheme(ctx context.Context, value string) (bool, error)
	ToggleTheme(ctx context.Context) (domain.Theme, error)
	SetLocale(ctx context.Context, value string) (bool, error)
	T(key string, args ...any) string
}

const settingsCommandLong = `Manage the user profile.

USAGE:
    daybook settings <subcommand>

SUBCOMMANDS:
    show               Display the profile
    name <name>        Set the display name
    theme <theme>      Set the theme: light or dark
    toggle-theme       Switch between light and dark
    locale <locale>    Set the language: en or fa

EXAMPLES:
    daybook settings name Sara
    daybook settings locale fa
    daybook settings show --json`

// NewSettingsCmd creates the settings command with explicit dependencies.
func NewSettingsCmd(client settingsClient) *cobra.Command {
	if client == nil {
		panic("NewSettingsCmd: client dependency cannot be nil")
	}

	settingsCmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"profile"},
		Short:   "Manage the user profile",
		Long:    settingsCommandLong,
	}
	settingsCmd.AddCommand(
		newSettingsShowCmd(client),
		newSettingsNameCmd(client),
		newSettingsThemeCmd(client),
		newSettingsToggleThemeCmd(client),
		newSettingsLocaleCmd(client),
	)
	return settingsCmd
}

func newSettingsShowCmd(client settingsClient) *cobra.Command {
	var jsonOutput bool

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				data, err := json.MarshalIndent(client.Profile(), "", "  ")
				if err != nil {
					return fmt.Errorf("marshal settings: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			data := client.Dashboard()
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s: %s\n", client.T("name"), data.Name)
			_, _ = fmt.Fprintf(w, "%s: %s\n", client.T("theme"), data.Theme)
			_, _ = fmt.Fprintf(w, "%s: %s\n", client.T("locale"), data.Locale)
			if data.MemberSince != "" {
				_, _ = fmt.Fprintln(w, data.MemberSince)
			} else {
				_, _ = fmt.Fprintln(w, client.T("not_member"))
			}
			return nil
		},
	}
	showCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the stored settings as JSON")
	return showCmd
}

func newSettingsNameCmd(client settingsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "name <name>",
		Short: "Set the display name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.SetName(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func newSettingsThemeCmd(client settingsClient) *cobra.Command {
	return &cobra.Command{
		Use:       "theme <light|dark>",
		Short:     "Set the theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.ThemeLight), string(domain.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := client.SetTheme(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !changed {
				colors.Info(fmt.Sprintf("theme is already %s", strings.ToLower(args[0])))
			}
			return nil
		},
	}
}

func newSettingsToggleThemeCmd(client settingsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-theme",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := client.ToggleTheme(cmd.Context())
			return err
		},
	}
}

func newSettingsLocaleCmd(client settingsClient) *cobra.Command {
	return &cobra.Command{
		Use:       "locale <en|fa>",
		Short:     "Set the language",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.LocaleEnglish), string(domain.LocaleFarsi)},
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := client.SetLocale(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !changed {
				colors.Info(fmt.Sprintf("language is already %s", strings.ToLower(args[0])))
			}
			return nil
		},
	}
}
