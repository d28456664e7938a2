package app

import (
	"context"
	"errors"

	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/hooks"
	"github.com/daybook-app/daybook/internal/weather"
)

// ErrNoCity is returned by CurrentWeather when no default city is saved.
var ErrNoCity = errors.New("no city saved")

// SaveCity stores the default weather city.
func (a *App) SaveCity(ctx context.Context, city domain.SavedCity) error {
	if err := a.cities.SaveCity(&city); err != nil {
		return err
	}
	return a.runHook(ctx, hooks.EventCitySaved, map[string]string{
		"city":    city.City,
		"city_fa": city.NameFa,
		"lat":     city.Lat,
		"lng":     city.Lng,
	})
}

// ClearCity forgets the default city.
func (a *App) ClearCity() error {
	if err := a.cities.SaveCity(nil); err != nil {
		return err
	}
	a.notifications.Info(a.T("notify.city_cleared"))
	return nil
}

// CurrentWeather looks up the weather of the saved city.
func (a *App) CurrentWeather(ctx context.Context) (*weather.Report, error) {
	city := a.cities.SavedCity()
	if city == nil {
		return nil, ErrNoCity
	}
	return a.weather.Lookup(ctx, *city)
}

// SavedCity returns the default city, or nil when none is saved.
func (a *App) SavedCity() *domain.SavedCity {
	return a.cities.SavedCity()
}
