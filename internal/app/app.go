// Package app wires storage, the stores and their side channels into the
// use-cases shared by the CLI and the dashboard.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/domain"
	derrors "github.com/daybook-app/daybook/internal/errors"
	"github.com/daybook-app/daybook/internal/hooks"
	"github.com/daybook-app/daybook/internal/i18n"
	"github.com/daybook-app/daybook/internal/notify"
	"github.com/daybook-app/daybook/internal/settings"
	"github.com/daybook-app/daybook/internal/storage"
	"github.com/daybook-app/daybook/internal/todo"
	"github.com/daybook-app/daybook/internal/weather"
	"github.com/jonboulle/clockwork"
)

// HookRunner runs the scripts registered for an event.
type HookRunner interface {
	Run(ctx context.Context, event hooks.Event, env map[string]string) error
}

// Options configures New. Zero values are filled from the loaded configuration.
type Options struct {
	// KV is the storage backend. Nil opens the configured backend.
	KV storage.KV
	// Clock drives notification expiry and timestamps.
	Clock clockwork.Clock
	// Fetcher replaces the HTTP weather client.
	Fetcher    weather.Fetcher
	HTTPClient *http.Client
	Hooks      HookRunner
	Catalog    *i18n.Catalog
}

// App is the composition root.
type App struct {
	kv      storage.KV
	clock   clockwork.Clock
	hooks   HookRunner
	lang    *i18n.Switcher
	catalog *i18n.Catalog

	settings      *settings.Store
	todos         *todo.Store
	cities        *weather.CityStore
	notifications *notify.Store
	weather       *weather.Service
	prefs         *storage.Repository[settings.ViewPreferences]

	unsubscribe func()
}

// New builds the application. The returned App owns opts.KV and closes it.
func New(opts Options) (*App, error) {
	kv := opts.KV
	if kv == nil {
		var err error
		kv, err = storage.NewFromConfig()
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = i18n.Default()
	}
	runner := opts.Hooks
	if runner == nil {
		r := hooks.NewRunner(hooks.ConfigFromGlobal())
		if err := r.Init(); err != nil {
			colors.Warning(err.Error())
		}
		runner = r
	}

	a := &App{kv: kv, clock: clock, hooks: runner, catalog: catalog}
	a.notifications = notify.New(
		notify.WithClock(clock),
		notify.WithDurations(
			config.GetDuration("notification_duration", notify.DefaultDuration),
			config.GetDuration("error_notification_duration", notify.DefaultErrorDuration),
		),
	)

	a.settings = settings.New(
		storage.NewRepository[domain.UserSettings](kv, storage.KeyUserSettings),
		settings.WithNotifier(a.notifications),
		settings.WithMessages(catalog),
		settings.WithNow(clock.Now),
	)
	a.lang = i18n.NewSwitcher(catalog, a.settings.Locale())
	a.unsubscribe = a.settings.SubscribeLocale(a.lang.HandleLocaleChanged)

	a.todos = todo.New(
		storage.NewRepository[[]domain.TodoItem](kv, storage.KeyTodoList),
		todo.WithNow(clock.Now),
	)
	a.cities = weather.NewCityStore(
		storage.NewRepository[domain.SavedCity](kv, storage.KeyWeatherCity),
		weather.WithCityNotifier(a.notifications, func(c domain.SavedCity) string {
			return catalog.CitySaved(a.lang.Locale(), c)
		}),
	)
	a.prefs = storage.NewRepository[settings.ViewPreferences](kv, storage.KeyViewPreferences)

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = weather.NewClient(weather.ClientConfigFromGlobal(), opts.HTTPClient)
	}
	a.weather = weather.NewService(fetcher, a.notifications, func(err error) string {
		return a.lang.T("notify.weather_failed", derrors.UserMessage(err))
	})

	colors.StructuredInfo("app", "init", "completed", nil, "", map[string]interface{}{
		"locale": a.lang.Locale().String(),
	})
	return a, nil
}

// Close stops notification timers and closes storage.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.notifications.Close()
	return a.kv.Close()
}

// Settings returns the settings store.
func (a *App) Settings() *settings.Store { return a.settings }

// Todos returns the todo store.
func (a *App) Todos() *todo.Store { return a.todos }

// Cities returns the saved city store.
func (a *App) Cities() *weather.CityStore { return a.cities }

// Notifications returns the notification store.
func (a *App) Notifications() *notify.Store { return a.notifications }

// Language returns the active UI language.
func (a *App) Language() *i18n.Switcher { return a.lang }

// Handler routes user-facing messages into the notification list.
func (a *App) Handler() derrors.ErrorHandler {
	return derrors.NewNotifyHandler(a.notifications)
}

// Theme returns the active display theme.
func (a *App) Theme() domain.Theme {
	return a.settings.Theme()
}

// T renders key in the active language.
func (a *App) T(key string, args ...any) string {
	return a.lang.T(key, args...)
}

// Now returns the current time of the app clock.
func (a *App) Now() time.Time {
	return a.clock.Now()
}

func (a *App) runHook(ctx context.Context, event hooks.Event, env map[string]string) error {
	if err := a.hooks.Run(ctx, event, env); err != nil {
		colors.StructuredWarn("hooks", string(event), "failed", err, "", map[string]interface{}{"env": env})
		return err
	}
	return nil
}
