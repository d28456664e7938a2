// Package domain provides the domain layer for daybook.
// It contains value objects, invariants and pure helpers shared by the stores.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Theme is the display theme of the user interface.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid checks if the theme is a known value.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark:
		return true
	default:
		return false
	}
}

// String returns the string representation of the theme.
func (t Theme) String() string {
	return string(t)
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Locale is the user interface language.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleFarsi   Locale = "fa"
)

// IsValid checks if the locale is a supported language.
func (l Locale) IsValid() bool {
	switch l {
	case LocaleEnglish, LocaleFarsi:
		return true
	default:
		return false
	}
}

// String returns the string representation of the locale.
func (l Locale) String() string {
	return string(l)
}

// IsRTL reports whether the locale is laid out right-to-left.
func (l Locale) IsRTL() bool {
	return l == LocaleFarsi
}

// ParseTheme parses a string into a Theme.
func ParseTheme(value string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(value)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidTheme, value)
	}
	return t, nil
}

// ParseLocale parses a string into a Locale.
func ParseLocale(value string) (Locale, error) {
	l := Locale(strings.ToLower(strings.TrimSpace(value)))
	if !l.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidLocale, value)
	}
	return l, nil
}

// MemberSinceLayout is the ISO-8601 layout used for UserSettings.MemberSince.
const MemberSinceLayout = "2006-01-02T15:04:05.000Z07:00"

// UserSettings is the single persisted user profile.
//
// JSON Schema:
//
//	{
//	  "name": "",
//	  "theme": "light",
//	  "locale": "en",
//	  "memberSince": ""
//	}
type UserSettings struct {
	// Name is the display name, trimmed. Empty means not yet set.
	Name string `json:"name"`
	// Theme is the display theme.
	Theme Theme `json:"theme"`
	// Locale is the UI language; fa implies right-to-left layout.
	Locale Locale `json:"locale"`
	// MemberSince is set once, when Name first becomes non-empty.
	MemberSince string `json:"memberSince"`
}

// DefaultUserSettings returns the profile installed when nothing is stored.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		Name:        "",
		Theme:       ThemeLight,
		Locale:      LocaleEnglish,
		MemberSince: "",
	}
}

// FormatMemberSince renders t in the MemberSince layout, always in UTC.
func FormatMemberSince(t time.Time) string {
	return t.UTC().Format(MemberSinceLayout)
}

// MemberSinceTime parses MemberSince. The zero time and false are returned when unset or invalid.
func (s UserSettings) MemberSinceTime() (time.Time, bool) {
	if s.MemberSince == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s.MemberSince)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Normalize replaces unknown enum values with defaults and trims the name.
// It reports the fields it had to repair.
func (s UserSettings) Normalize() (UserSettings, []string) {
	defaults := DefaultUserSettings()
	var repaired []string
	s.Name = strings.TrimSpace(s.Name)
	if !s.Theme.IsValid() {
		s.Theme = defaults.Theme
		repaired = append(repaired, "theme")
	}
	if !s.Locale.IsValid() {
		s.Locale = defaults.Locale
		repaired = append(repaired, "locale")
	}
	if s.MemberSince != "" {
		if _, ok := s.MemberSinceTime(); !ok {
			s.MemberSince = ""
			repaired = append(repaired, "memberSince")
		}
	}
	return s, repaired
}

// LocaleChanged is published when the stored locale switches.
type LocaleChanged struct {
	From Locale
	To   Locale
}
