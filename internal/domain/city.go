package domain

import "strings"

// SavedCity is the default city used to pre-fill a weather lookup.
// Coordinates are kept as text and sent to the weather API unparsed.
type SavedCity struct {
	City   string `json:"city"`
	NameFa string `json:"name_fa,omitempty"`
	Lat    string `json:"lat"`
	Lng    string `json:"lng"`
}

// Validate returns ErrIncompleteCity when a required field is blank.
func (c SavedCity) Validate() error {
	if strings.TrimSpace(c.City) == "" || strings.TrimSpace(c.Lat) == "" || strings.TrimSpace(c.Lng) == "" {
		return ErrIncompleteCity
	}
	return nil
}

// DisplayName returns the localized name when one is available for locale.
func (c SavedCity) DisplayName(locale Locale) string {
	if locale == LocaleFarsi && c.NameFa != "" {
		return c.NameFa
	}
	return c.City
}
