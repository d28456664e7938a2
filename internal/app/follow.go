package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/logging"
	"github.com/daybook-app/daybook/internal/storage"
)

// Change describes a key written by another process.
type Change struct {
	Key     string
	Summary string
}

// Reload refreshes the store that owns key and describes its new state.
// It returns false for keys no store owns.
func (a *App) Reload(key string) (Change, bool) {
	switch key {
	case storage.KeyUserSettings:
		snap := a.settings.Reload()
		a.lang.HandleLocaleChanged(domain.LocaleChanged{From: a.lang.Locale(), To: snap.Locale})
		return Change{Key: key, Summary: fmt.Sprintf("name=%q theme=%s locale=%s", snap.Name, snap.Theme, snap.Locale)}, true
	case storage.KeyTodoList:
		a.todos.Reload()
		return Change{Key: key, Summary: a.T("todo_counts", a.todos.CompletedCount(), a.todos.Count())}, true
	case storage.KeyWeatherCity:
		a.cities.Reload()
		if city := a.cities.SavedCity(); city != nil {
			return Change{Key: key, Summary: city.DisplayName(a.lang.Locale())}, true
		}
		return Change{Key: key, Summary: a.T("city_not_selected")}, true
	case storage.KeyViewPreferences:
		prefs := a.ViewPreferences()
		return Change{Key: key, Summary: fmt.Sprintf("filter=%s sort=%s", prefs.Filter, prefs.Sort)}, true
	default:
		return Change{}, false
	}
}

// FollowOptions configures Follow.
type FollowOptions struct {
	Output io.Writer
	// JSON writes one JSON log line per change instead of colored text.
	JSON bool
	// OnChange is called after each reload.
	OnChange func(Change)
}

// Follow watches storage and reloads the stores until ctx is done.
func (a *App) Follow(ctx context.Context, opts FollowOptions) error {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	var logger logging.Logger
	if opts.JSON {
		logger = logging.NewWriter(opts.Output, logging.Config{Command: "follow"})
	}

	err := storage.Watch(ctx, a.kv, func(key string) {
		change, ok := a.Reload(key)
		if !ok {
			colors.Debug(fmt.Sprintf("follow: ignoring unknown key %s", key))
			return
		}
		if logger != nil {
			logger.Info("reload", colors.FieldStore, storeOf(change.Key), colors.FieldOp, "reload",
				colors.FieldKey, change.Key, "summary", change.Summary)
		} else {
			printChange(opts.Output, a.clock.Now().Format("15:04:05"), change)
		}
		if opts.OnChange != nil {
			opts.OnChange(change)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// storeOf names the store that owns a storage key.
func storeOf(key string) string {
	switch key {
	case storage.KeyUserSettings:
		return "settings"
	case storage.KeyTodoList:
		return "todo"
	case storage.KeyWeatherCity:
		return "weather"
	case storage.KeyViewPreferences:
		return "preferences"
	}
	return "unknown"
}

func printChange(w io.Writer, ts string, c Change) {
	_, _ = fmt.Fprintf(w, "%s[%s]%s %s%s%s %s\n", colors.Cyan, ts, colors.Reset, colors.Yellow, c.Key, colors.Reset, c.Summary)
}
