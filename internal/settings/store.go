// Package settings provides the user profile store: name, theme, locale and join date.
package settings

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/i18n"
	"github.com/daybook-app/daybook/internal/storage"
)

// Notifier receives user-facing change messages.
type Notifier interface {
	NameUpdated(message string) domain.Notification
	LocaleChanged(message string) domain.Notification
	ThemeChanged(message string, light bool) domain.Notification
}

// Messages renders notification text.
type Messages interface {
	NameUpdated(locale domain.Locale, name string) string
	ThemeChanged(locale domain.Locale, theme domain.Theme) string
	LocaleChanged(locale domain.Locale) string
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets where change notifications go. Without one, none are sent.
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		s.notifier = n
	}
}

// WithMessages overrides the notification texts.
func WithMessages(m Messages) Option {
	return func(s *Store) {
		s.messages = m
	}
}

// WithNow overrides the clock used for memberSince.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store owns the persisted UserSettings record.
type Store struct {
	repo     domain.Repository[domain.UserSettings]
	notifier Notifier
	messages Messages
	now      func() time.Time

	mu      sync.Mutex
	current domain.UserSettings
	subs    map[int]func(domain.LocaleChanged)
	nextSub int
}

// New loads the stored record. Missing or corrupt data yields defaults.
func New(repo domain.Repository[domain.UserSettings], opts ...Option) *Store {
	if repo == nil {
		panic("settings.New: repository cannot be nil")
	}
	s := &Store{
		repo:     repo,
		messages: i18n.Default(),
		now:      time.Now,
		subs:     make(map[int]func(domain.LocaleChanged)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current = s.load()
	return s
}

func (s *Store) load() domain.UserSettings {
	stored, found, err := s.repo.Load()
	if err != nil {
		colors.Warning(fmt.Sprintf("failed to load user settings, using defaults: %v", err))
		colors.StructuredWarn("settings", "load", "fallback", err, storage.KeyUserSettings, nil)
		return domain.DefaultUserSettings()
	}
	if !found {
		return domain.DefaultUserSettings()
	}
	normalized, repaired := stored.Normalize()
	if len(repaired) > 0 {
		colors.Warning(fmt.Sprintf("user settings had invalid %s; using defaults for those fields", strings.Join(repaired, ", ")))
	}
	return normalized
}

// Reload re-reads the record, picking up writes made by other processes.
func (s *Store) Reload() domain.UserSettings {
	loaded := s.load()
	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return loaded
}

// Snapshot returns a copy of the current record.
func (s *Store) Snapshot() domain.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Name returns the display name.
func (s *Store) Name() string { return s.Snapshot().Name }

// Theme returns the display theme.
func (s *Store) Theme() domain.Theme { return s.Snapshot().Theme }

// Locale returns the UI language.
func (s *Store) Locale() domain.Locale { return s.Snapshot().Locale }

// MemberSince returns the join timestamp or "".
func (s *Store) MemberSince() string { return s.Snapshot().MemberSince }

// saveLocked installs next and persists it. On failure the in-memory value still changes.
// Caller must hold s.mu.
func (s *Store) saveLocked(next domain.UserSettings, action string) error {
	s.current = next
	if err := s.repo.Save(next); err != nil {
		colors.StructuredError("settings", action, "failed", err, storage.KeyUserSettings, nil)
		return fmt.Errorf("save user settings: %w", err)
	}
	colors.StructuredInfo("settings", action, "completed", nil, storage.KeyUserSettings, nil)
	return nil
}

// UpdateName stores the trimmed name. The first non-empty name latches memberSince.
func (s *Store) UpdateName(name string) error {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	if name == s.current.Name {
		s.mu.Unlock()
		return nil
	}
	next := s.current
	next.Name = name
	if name != "" && next.MemberSince == "" {
		next.MemberSince = domain.FormatMemberSince(s.now())
	}
	err := s.saveLocked(next, "update_name")
	locale := next.Locale
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if name != "" && s.notifier != nil {
		s.notifier.NameUpdated(s.messages.NameUpdated(locale, name))
	}
	return nil
}

// UpdateTheme sets the theme. It reports false and does nothing when theme is already active.
func (s *Store) UpdateTheme(theme domain.Theme) (bool, error) {
	if !theme.IsValid() {
		return false, fmt.Errorf("%w: %s", domain.ErrInvalidTheme, theme)
	}

	s.mu.Lock()
	if theme == s.current.Theme {
		s.mu.Unlock()
		return false, nil
	}
	next := s.current
	next.Theme = theme
	err := s.saveLocked(next, "update_theme")
	locale := next.Locale
	s.mu.Unlock()

	if err != nil {
		return true, err
	}
	if s.notifier != nil {
		s.notifier.ThemeChanged(s.messages.ThemeChanged(locale, theme), theme == domain.ThemeLight)
	}
	return true, nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme() (domain.Theme, error) {
	next := s.Theme().Opposite()
	_, err := s.UpdateTheme(next)
	return next, err
}

// UpdateLocale sets the UI language and publishes a LocaleChanged event to subscribers.
// Setting the active locale again is a no-op.
func (s *Store) UpdateLocale(locale domain.Locale) (domain.LocaleChanged, bool, error) {
	if !locale.IsValid() {
		return domain.LocaleChanged{}, false, fmt.Errorf("%w: %s", domain.ErrInvalidLocale, locale)
	}

	s.mu.Lock()
	event := domain.LocaleChanged{From: s.current.Locale, To: locale}
	if event.From == event.To {
		s.mu.Unlock()
		return event, false, nil
	}
	next := s.current
	next.Locale = locale
	err := s.saveLocked(next, "update_locale")
	subs := make([]func(domain.LocaleChanged), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
	if err != nil {
		return event, true, err
	}
	if s.notifier != nil {
		s.notifier.LocaleChanged(s.messages.LocaleChanged(locale))
	}
	return event, true, nil
}

// SubscribeLocale registers fn for locale changes and returns a function that unregisters it.
func (s *Store) SubscribeLocale(fn func(domain.LocaleChanged)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
