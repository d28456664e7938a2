package app

import (
	"context"

	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/hooks"
)

func settingEnv(setting, value string) map[string]string {
	return map[string]string{"setting": setting, "value": value}
}

// SetName stores the display name.
func (a *App) SetName(ctx context.Context, name string) error {
	before := a.settings.Name()
	if err := a.settings.UpdateName(name); err != nil {
		return err
	}
	if after := a.settings.Name(); after != before {
		return a.runHook(ctx, hooks.EventSettingsChange, settingEnv("name", after))
	}
	return nil
}

// SetTheme parses and applies a theme. It reports whether the theme changed.
func (a *App) SetTheme(ctx context.Context, value string) (bool, error) {
	theme, err := domain.ParseTheme(value)
	if err != nil {
		return false, err
	}
	changed, err := a.settings.UpdateTheme(theme)
	if err != nil || !changed {
		return changed, err
	}
	return true, a.runHook(ctx, hooks.EventSettingsChange, settingEnv("theme", theme.String()))
}

// ToggleTheme flips between light and dark.
func (a *App) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	theme, err := a.settings.ToggleTheme()
	if err != nil {
		return theme, err
	}
	return theme, a.runHook(ctx, hooks.EventSettingsChange, settingEnv("theme", theme.String()))
}

// SetLocale parses and applies a UI language. It reports whether it changed.
func (a *App) SetLocale(ctx context.Context, value string) (bool, error) {
	locale, err := domain.ParseLocale(value)
	if err != nil {
		return false, err
	}
	_, changed, err := a.settings.UpdateLocale(locale)
	if err != nil || !changed {
		return changed, err
	}
	return true, a.runHook(ctx, hooks.EventSettingsChange, settingEnv("locale", locale.String()))
}

// Profile returns the persisted user settings.
func (a *App) Profile() domain.UserSettings {
	return a.settings.Snapshot()
}
