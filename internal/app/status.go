package app

import (
	"fmt"
	"io"

	"github.com/daybook-app/daybook/internal/format"
	"github.com/daybook-app/daybook/internal/i18n"
)

// Status output formats.
const (
	StatusSummary = "summary"
	StatusJSON    = "json"
)

// ValidateStatusFormat validates status output format.
func ValidateStatusFormat(formatValue string) error {
	switch formatValue {
	case StatusSummary, StatusJSON:
		return nil
	default:
		return fmt.Errorf("status: unknown format: %s", formatValue)
	}
}

// Dashboard collects the summary shown on the dashboard.
func (a *App) Dashboard() format.StatusData {
	snap := a.settings.Snapshot()
	locale := a.lang.Locale()
	data := format.StatusData{
		Greeting:  a.catalog.Greeting(locale, snap.Name, a.clock.Now()),
		Name:      snap.Name,
		Theme:     a.catalog.ThemeName(locale, snap.Theme),
		Locale:    a.catalog.LanguageName(locale, snap.Locale),
		Direction: i18n.Direction(locale),
		Todos: format.TodoCounts{
			Total:   a.todos.Count(),
			Done:    a.todos.CompletedCount(),
			Pending: a.todos.PendingCount(),
		},
		Notifications: a.notifications.Len(),
	}
	if since := i18n.FormatMemberSince(locale, snap.MemberSince, a.clock.Now().Location()); since != "" {
		data.MemberSince = a.T("member_since", since)
	}
	if city := a.cities.SavedCity(); city != nil {
		data.City = city.DisplayName(locale)
	}
	return data
}

// SummaryLabels returns the localized captions for format.FormatSummary.
func (a *App) SummaryLabels() format.Labels {
	return format.Labels{
		Progress: a.T("todo_counts", a.todos.CompletedCount(), a.todos.Count()),
		City:     a.T("weather"),
		NoCity:   a.T("city_not_selected"),
		Theme:    a.T("theme"),
		Locale:   a.T("locale"),
	}
}

// WriteStatus writes the dashboard summary in formatValue.
func (a *App) WriteStatus(w io.Writer, formatValue string) error {
	if err := ValidateStatusFormat(formatValue); err != nil {
		return err
	}
	data := a.Dashboard()
	if formatValue == StatusJSON {
		return format.FormatJSON(w, data)
	}
	return format.FormatSummary(w, data, a.SummaryLabels())
}
