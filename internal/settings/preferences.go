package settings

import (
	"fmt"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/domain"
)

// ViewPreferences holds the todo view state remembered by the dashboard.
//
// JSON Schema:
//
//	{
//	  "filter": "all",
//	  "sort": "newest"
//	}
type ViewPreferences struct {
	// Filter is one of "all", "pending", "completed".
	Filter domain.TodoFilter `json:"filter"`
	// Sort is one of "newest", "oldest", "alphabetical".
	Sort domain.TodoSort `json:"sort"`
}

// DefaultViewPreferences shows every todo, newest first.
func DefaultViewPreferences() ViewPreferences {
	return ViewPreferences{Filter: domain.FilterAll, Sort: domain.SortNewest}
}

// Validate checks that preference values are valid.
func (p ViewPreferences) Validate() error {
	if !p.Filter.IsValid() {
		return fmt.Errorf("invalid filter value: %s", p.Filter)
	}
	if !p.Sort.IsValid() {
		return fmt.Errorf("invalid sort value: %s", p.Sort)
	}
	return nil
}

// LoadPreferences reads view preferences, returning defaults when missing or invalid.
func LoadPreferences(repo domain.Repository[ViewPreferences]) ViewPreferences {
	prefs, found, err := repo.Load()
	if err != nil {
		colors.Warning(fmt.Sprintf("failed to load view preferences, using defaults: %v", err))
		return DefaultViewPreferences()
	}
	if !found {
		return DefaultViewPreferences()
	}
	if err := prefs.Validate(); err != nil {
		colors.Warning(fmt.Sprintf("invalid view preferences, using defaults: %v", err))
		return DefaultViewPreferences()
	}
	return prefs
}

// SavePreferences validates and persists view preferences.
func SavePreferences(repo domain.Repository[ViewPreferences], prefs ViewPreferences) error {
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("invalid view preferences: %w", err)
	}
	if err := repo.Save(prefs); err != nil {
		return fmt.Errorf("save view preferences: %w", err)
	}
	return nil
}
