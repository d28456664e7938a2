package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/hooks"
	"github.com/daybook-app/daybook/internal/settings"
)

func todoEnv(item domain.TodoItem) map[string]string {
	return map[string]string{
		"todo_id":      strconv.FormatInt(item.ID, 10),
		"todo_text":    item.Text,
		"todo_is_done": strconv.FormatBool(item.IsDone),
	}
}

// AddTodo adds a task and announces it. Blank and duplicate texts are
// reported as error notifications.
func (a *App) AddTodo(ctx context.Context, text string) (domain.TodoItem, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		a.notifications.Error(a.T("notify.todo_empty"))
		return domain.TodoItem{}, domain.ErrEmptyText
	}
	item, ok := a.todos.Add(trimmed)
	if !ok {
		a.notifications.Error(a.T("notify.todo_duplicate", trimmed))
		return domain.TodoItem{}, fmt.Errorf("%w: %s", domain.ErrDuplicateTodo, trimmed)
	}
	if err := a.todoSaveError(); err != nil {
		return item, err
	}
	a.notifications.AddTodo(a.T("notify.todo_added", item.Text))
	return item, a.runHook(ctx, hooks.EventTodoAdd, todoEnv(item))
}

// ToggleTodo flips the completion of id and announces the new state.
func (a *App) ToggleTodo(id int64) (domain.TodoItem, error) {
	item, ok := a.todos.Toggle(id)
	if !ok {
		return domain.TodoItem{}, fmt.Errorf("%w: %d", domain.ErrTodoNotFound, id)
	}
	if err := a.todoSaveError(); err != nil {
		return item, err
	}
	if item.IsDone {
		a.notifications.CompleteTodo(a.T("notify.todo_completed", item.Text))
	} else {
		a.notifications.ReopenTodo(a.T("notify.todo_reopened", item.Text))
	}
	return item, nil
}

// EditTodo replaces the text of id. Unchanged text is accepted silently.
func (a *App) EditTodo(id int64, text string) (domain.TodoItem, error) {
	before, ok := a.todos.Get(id)
	if !ok {
		return domain.TodoItem{}, fmt.Errorf("%w: %d", domain.ErrTodoNotFound, id)
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		a.notifications.Error(a.T("notify.todo_empty"))
		return before, domain.ErrEmptyText
	}
	if err := a.todos.Edit(id, trimmed); err != nil {
		if errors.Is(err, domain.ErrDuplicateTodo) {
			a.notifications.Error(a.T("notify.todo_duplicate", trimmed))
		}
		return before, err
	}
	after, _ := a.todos.Get(id)
	if after.Text != before.Text {
		if err := a.todoSaveError(); err != nil {
			return after, err
		}
		a.notifications.EditTodo(a.T("notify.todo_edited", after.Text))
	}
	return after, nil
}

// RemoveTodo deletes id and announces it.
func (a *App) RemoveTodo(ctx context.Context, id int64) (domain.TodoItem, error) {
	item, ok := a.todos.Remove(id)
	if !ok {
		return domain.TodoItem{}, fmt.Errorf("%w: %d", domain.ErrTodoNotFound, id)
	}
	if err := a.todoSaveError(); err != nil {
		return item, err
	}
	a.notifications.DeleteTodo(a.T("notify.todo_deleted", item.Text))
	return item, a.runHook(ctx, hooks.EventTodoRemove, todoEnv(item))
}

// ClearTodos removes every task and returns how many were removed.
func (a *App) ClearTodos(ctx context.Context) (int, error) {
	n := a.todos.ClearAll()
	if err := a.todoSaveError(); err != nil {
		return n, err
	}
	a.notifications.Info(a.T("notify.todos_cleared"))
	return n, a.runHook(ctx, hooks.EventTodoClear, map[string]string{"todo_count": strconv.Itoa(n)})
}

// todoSaveError reports the save failure of the mutation that just ran.
// The list keeps the change in memory either way.
func (a *App) todoSaveError() error {
	if err := a.todos.LastSaveError(); err != nil {
		return fmt.Errorf("save todo list: %w", err)
	}
	return nil
}

// ListTodos returns the filtered and sorted view of the list.
func (a *App) ListTodos(filter domain.TodoFilter, order domain.TodoSort) []domain.TodoItem {
	return a.todos.View(filter, order)
}

// ViewPreferences returns the remembered dashboard filter and sort.
func (a *App) ViewPreferences() settings.ViewPreferences {
	return settings.LoadPreferences(a.prefs)
}

// SaveViewPreferences remembers the dashboard filter and sort.
func (a *App) SaveViewPreferences(prefs settings.ViewPreferences) error {
	return settings.SavePreferences(a.prefs, prefs)
}
