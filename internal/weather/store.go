// Package weather holds the saved default city and the current-weather lookup.
package weather

import (
	"fmt"
	"sync"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/storage"
)

// CityNotifier receives the city saved notification.
type CityNotifier interface {
	CitySaved(message string) domain.Notification
}

// CityOption configures a CityStore.
type CityOption func(*CityStore)

// WithCityNotifier emits message(city) after every successful non-nil save.
func WithCityNotifier(n CityNotifier, message func(domain.SavedCity) string) CityOption {
	return func(s *CityStore) {
		s.notifier = n
		s.message = message
	}
}

// CityStore owns the optional saved city. It is either absent or complete.
type CityStore struct {
	repo     domain.Repository[domain.SavedCity]
	notifier CityNotifier
	message  func(domain.SavedCity) string

	mu   sync.Mutex
	city *domain.SavedCity
}

// NewCityStore loads the saved city. Corrupt or incomplete records are ignored.
func NewCityStore(repo domain.Repository[domain.SavedCity], opts ...CityOption) *CityStore {
	if repo == nil {
		panic("weather.NewCityStore: repository cannot be nil")
	}
	s := &CityStore{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	s.city = s.load()
	return s
}

func (s *CityStore) load() *domain.SavedCity {
	city, found, err := s.repo.Load()
	if err != nil {
		colors.Warning(fmt.Sprintf("failed to load saved city, ignoring it: %v", err))
		return nil
	}
	if !found {
		return nil
	}
	if err := city.Validate(); err != nil {
		colors.Warning(fmt.Sprintf("stored city is incomplete, ignoring it: %v", err))
		return nil
	}
	return &city
}

// Reload re-reads the saved city.
func (s *CityStore) Reload() {
	city := s.load()
	s.mu.Lock()
	s.city = city
	s.mu.Unlock()
}

// SaveCity replaces the saved city wholesale and persists immediately.
// A nil city clears it and removes the storage key.
func (s *CityStore) SaveCity(city *domain.SavedCity) error {
	if city == nil {
		s.mu.Lock()
		s.city = nil
		err := s.repo.Clear()
		s.mu.Unlock()
		if err != nil {
			return fmt.Errorf("clear saved city: %w", err)
		}
		colors.StructuredInfo("weather", "clear_city", "completed", nil, storage.KeyWeatherCity, nil)
		return nil
	}

	if err := city.Validate(); err != nil {
		return err
	}
	saved := *city

	s.mu.Lock()
	s.city = &saved
	err := s.repo.Save(saved)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("save city: %w", err)
	}
	colors.StructuredInfo("weather", "save_city", "completed", nil, storage.KeyWeatherCity, map[string]interface{}{
		"city": saved.City,
		"lat":  saved.Lat,
		"lng":  saved.Lng,
	})

	if s.notifier != nil && s.message != nil {
		s.notifier.CitySaved(s.message(saved))
	}
	return nil
}

// SavedCity returns a copy of the saved city, or nil.
func (s *CityStore) SavedCity() *domain.SavedCity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.city == nil {
		return nil
	}
	c := *s.city
	return &c
}
