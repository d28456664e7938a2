package weather

import (
	"context"
	"fmt"

	"github.com/daybook-app/daybook/internal/domain"
)

// Fetcher fetches current weather for coordinates.
type Fetcher interface {
	Current(ctx context.Context, lat, lng string) (*Current, error)
}

// ErrorNotifier receives lookup failures.
type ErrorNotifier interface {
	Error(message string) domain.Notification
}

// Report is the result of a lookup.
type Report struct {
	City        domain.SavedCity
	Current     Current
	Description string
}

// Service looks up weather for a city. It never modifies any store.
type Service struct {
	fetcher  Fetcher
	notifier ErrorNotifier
	format   func(err error) string
}

// NewService creates a lookup service. format renders the error notification text;
// nil uses the error message.
func NewService(fetcher Fetcher, notifier ErrorNotifier, format func(error) string) *Service {
	if fetcher == nil {
		panic("weather.NewService: fetcher cannot be nil")
	}
	if format == nil {
		format = func(err error) string { return err.Error() }
	}
	return &Service{fetcher: fetcher, notifier: notifier, format: format}
}

// Lookup fetches weather for city. Failures are sent to the error notifier once and returned.
func (s *Service) Lookup(ctx context.Context, city domain.SavedCity) (*Report, error) {
	if err := city.Validate(); err != nil {
		return nil, err
	}
	current, err := s.fetcher.Current(ctx, city.Lat, city.Lng)
	if err != nil {
		err = fmt.Errorf("weather for %s: %w", city.City, err)
		if s.notifier != nil {
			s.notifier.Error(s.format(err))
		}
		return nil, err
	}
	return &Report{
		City:        city,
		Current:     *current,
		Description: DescribeCode(current.WeatherCode),
	}, nil
}
