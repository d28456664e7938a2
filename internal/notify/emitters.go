package notify

import "github.com/daybook-app/daybook/internal/domain"

// Info emits an info notification with the default lifetime.
func (s *Store) Info(message string) domain.Notification {
	return s.Emit(message, domain.NotificationInfo, 0)
}

// Success emits a success notification.
func (s *Store) Success(message string) domain.Notification {
	return s.Emit(message, domain.NotificationSuccess, 0)
}

// Error emits an error notification with the error lifetime.
func (s *Store) Error(message string) domain.Notification {
	return s.Emit(message, domain.NotificationError, 0)
}

// AddTodo reports a new todo.
func (s *Store) AddTodo(message string) domain.Notification {
	return s.Emit(message, domain.NotificationAdd, 0)
}

// EditTodo reports edited todo text.
func (s *Store) EditTodo(message string) domain.Notification {
	return s.Emit(message, domain.NotificationEdit, 0)
}

// CompleteTodo reports a todo marked done.
func (s *Store) CompleteTodo(message string) domain.Notification {
	return s.Emit(message, domain.NotificationComplete, 0)
}

// ReopenTodo reports a todo marked pending again.
func (s *Store) ReopenTodo(message string) domain.Notification {
	return s.Emit(message, domain.NotificationReopen, 0)
}

// DeleteTodo reports removed todos.
func (s *Store) DeleteTodo(message string) domain.Notification {
	return s.Emit(message, domain.NotificationDelete, 0)
}

// NameUpdated reports a profile name change.
func (s *Store) NameUpdated(message string) domain.Notification {
	return s.Emit(message, domain.NotificationNameUpdate, 0)
}

// LocaleChanged reports a language switch.
func (s *Store) LocaleChanged(message string) domain.Notification {
	return s.Emit(message, domain.NotificationLocaleChange, 0)
}

// ThemeChanged reports the selected theme.
func (s *Store) ThemeChanged(message string, light bool) domain.Notification {
	if light {
		return s.Emit(message, domain.NotificationThemeLight, 0)
	}
	return s.Emit(message, domain.NotificationThemeDark, 0)
}

// CitySaved reports a new default weather city.
func (s *Store) CitySaved(message string) domain.Notification {
	return s.Emit(message, domain.NotificationCitySaved, 0)
}
