package i18n

import (
	"sync"

	"github.com/daybook-app/daybook/internal/domain"
)

// Switcher holds the active UI language and follows locale change events.
type Switcher struct {
	catalog *Catalog

	mu     sync.RWMutex
	locale domain.Locale
}

// NewSwitcher starts with initial as the active language.
func NewSwitcher(catalog *Catalog, initial domain.Locale) *Switcher {
	if catalog == nil {
		panic("NewSwitcher: catalog cannot be nil")
	}
	if !initial.IsValid() {
		initial = domain.LocaleEnglish
	}
	return &Switcher{catalog: catalog, locale: initial}
}

// HandleLocaleChanged switches the active language. Pass it to a settings subscription.
func (s *Switcher) HandleLocaleChanged(event domain.LocaleChanged) {
	if !event.To.IsValid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locale = event.To
}

// Locale returns the active language.
func (s *Switcher) Locale() domain.Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

// Direction returns the text direction of the active language.
func (s *Switcher) Direction() string {
	return Direction(s.Locale())
}

// T renders key in the active language.
func (s *Switcher) T(key string, args ...any) string {
	return s.catalog.T(s.Locale(), key, args...)
}

// Catalog returns the underlying catalog.
func (s *Switcher) Catalog() *Catalog {
	return s.catalog
}
