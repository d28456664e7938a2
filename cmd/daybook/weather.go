package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/i18n"
	"github.com/daybook-app/daybook/internal/weather"
	"github.com/spf13/cobra"
)

type weatherClient interface {
	SaveCity(ctx context.Context, city domain.SavedCity) error
	ClearCity() error
	SavedCity() *domain.SavedCity
	CurrentWeather(ctx context.Context) (*weather.Report, error)
	Language() *i18n.Switcher
	T(key string, args ...any) string
}

const weatherCommandLong = `Look up the weather of your default city.

USAGE:
    daybook weather <subcommand>

SUBCOMMANDS:
    city <name>    Save the default city
    clear-city     Forget the default city
    now            Show the current weather of the default city

EXAMPLES:
    daybook weather city Tehran --lat 35.69 --lng 51.39 --fa تهران
    daybook weather now`

// NewWeatherCmd creates the weather command with explicit dependencies.
func NewWeatherCmd(client weatherClient) *cobra.Command {
	if client == nil {
		panic("NewWeatherCmd: client dependency cannot be nil")
	}

	weatherCmd := &cobra.Command{
		Use:   "weather",
		Short: "Look up the weather of your default city",
		Long:  weatherCommandLong,
	}
	weatherCmd.AddCommand(
		newWeatherCityCmd(client),
		newWeatherClearCityCmd(client),
		newWeatherNowCmd(client),
	)
	return weatherCmd
}

func newWeatherCityCmd(client weatherClient) *cobra.Command {
	var lat, lng, nameFa string

	cityCmd := &cobra.Command{
		Use:   "city <name>",
		Short: "Save the default city",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				city := client.SavedCity()
				if city == nil {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), client.T("city_not_selected"))
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n", city.DisplayName(client.Language().Locale()), city.Lat, city.Lng)
				return nil
			}
			return client.SaveCity(cmd.Context(), domain.SavedCity{
				City:   strings.Join(args, " "),
				NameFa: nameFa,
				Lat:    lat,
				Lng:    lng,
			})
		},
	}
	cityCmd.Flags().StringVar(&lat, "lat", "", "Latitude of the city")
	cityCmd.Flags().StringVar(&lng, "lng", "", "Longitude of the city")
	cityCmd.Flags().StringVar(&nameFa, "fa", "", "Farsi name of the city")
	return cityCmd
}

func newWeatherClearCityCmd(client weatherClient) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-city",
		Short: "Forget the default city",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.ClearCity()
		},
	}
}

func newWeatherNowCmd(client weatherClient) *cobra.Command {
	var jsonOutput bool

	nowCmd := &cobra.Command{
		Use:   "now",
		Short: "Show the current weather of the default city",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := client.CurrentWeather(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput {
				data, err := json.MarshalIndent(weatherJSON{
					City:        report.City,
					Current:     report.Current,
					Description: report.Description,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal weather: %w", err)
				}
				_, err = fmt.Fprintln(w, string(data))
				return err
			}

			_, _ = fmt.Fprintln(w, report.City.DisplayName(client.Language().Locale()))
			_, _ = fmt.Fprintf(w, "%s: %.1f°C\n", client.T("temperature"), report.Current.Temperature)
			_, _ = fmt.Fprintf(w, "%s: %s\n", client.T("weather_status"), report.Description)
			_, _ = fmt.Fprintf(w, "%s: %.1f km/h\n", client.T("wind_speed"), report.Current.WindSpeed)
			return nil
		},
	}
	nowCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return nowCmd
}

type weatherJSON struct {
	City        domain.SavedCity `json:"city"`
	Current     weather.Current  `json:"current"`
	Description string           `json:"description"`
}
