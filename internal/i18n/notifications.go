package i18n

import "github.com/daybook-app/daybook/internal/domain"

// NameUpdated renders the name change notification.
func (c *Catalog) NameUpdated(locale domain.Locale, name string) string {
	return c.T(locale, "notify.name_updated", name)
}

// ThemeChanged renders the theme change notification.
func (c *Catalog) ThemeChanged(locale domain.Locale, theme domain.Theme) string {
	if theme == domain.ThemeDark {
		return c.T(locale, "notify.theme_dark")
	}
	return c.T(locale, "notify.theme_light")
}

// LocaleChanged renders the language switch notification in the new language.
func (c *Catalog) LocaleChanged(locale domain.Locale) string {
	return c.T(locale, "notify.locale_changed", c.LanguageName(locale, locale))
}

// CitySaved renders the saved city notification.
func (c *Catalog) CitySaved(locale domain.Locale, city domain.SavedCity) string {
	return c.T(locale, "notify.city_saved", city.DisplayName(locale))
}
