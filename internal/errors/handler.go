// Package errors routes user-facing messages to the console or the notification list.
package errors

import (
	stderrors "errors"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/storage"
	"github.com/daybook-app/daybook/internal/weather"
)

// ErrorHandler is the interface for error handling.
// The CLI prints messages; the dashboard turns them into notifications.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// CLIHandler prints messages through the colors package.
type CLIHandler struct{}

var _ ErrorHandler = CLIHandler{}

// NewCLIHandler returns a console handler.
func NewCLIHandler() CLIHandler {
	return CLIHandler{}
}

func (CLIHandler) Error(msg string)   { colors.Error(msg) }
func (CLIHandler) Warning(msg string) { colors.Warning(msg) }
func (CLIHandler) Info(msg string)    { colors.Info(msg) }
func (CLIHandler) Success(msg string) { colors.Success(msg) }

// Emitter is the subset of the notification store used by NotifyHandler.
type Emitter interface {
	Error(message string) domain.Notification
	Info(message string) domain.Notification
	Success(message string) domain.Notification
}

// NotifyHandler turns messages into notifications. Warnings become info notifications.
type NotifyHandler struct {
	emitter Emitter
}

var _ ErrorHandler = (*NotifyHandler)(nil)

// NewNotifyHandler wraps emitter.
func NewNotifyHandler(emitter Emitter) *NotifyHandler {
	if emitter == nil {
		panic("NewNotifyHandler: emitter cannot be nil")
	}
	return &NotifyHandler{emitter: emitter}
}

func (h *NotifyHandler) Error(msg string)   { h.emitter.Error(msg) }
func (h *NotifyHandler) Warning(msg string) { h.emitter.Info(msg) }
func (h *NotifyHandler) Info(msg string)    { h.emitter.Info(msg) }
func (h *NotifyHandler) Success(msg string) { h.emitter.Success(msg) }

// UserMessage returns a short explanation of err suitable for display.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, domain.ErrDuplicateTodo):
		return "a task with that text already exists"
	case stderrors.Is(err, domain.ErrEmptyText):
		return "task text cannot be empty"
	case stderrors.Is(err, domain.ErrTodoNotFound):
		return "no task with that id"
	case stderrors.Is(err, domain.ErrInvalidTheme):
		return "theme must be light or dark"
	case stderrors.Is(err, domain.ErrInvalidLocale):
		return "language must be en or fa"
	case stderrors.Is(err, domain.ErrIncompleteCity):
		return "a city needs a name, latitude and longitude"
	case stderrors.Is(err, weather.ErrUnavailable):
		return "weather service is temporarily unavailable, try again later"
	case stderrors.Is(err, storage.ErrLockTimeout):
		return "storage is busy, another daybook process may be stuck"
	default:
		return err.Error()
	}
}

// Report sends err to h as an error message. Nil errors are ignored.
func Report(h ErrorHandler, err error) {
	if err == nil {
		return
	}
	h.Error(UserMessage(err))
}
