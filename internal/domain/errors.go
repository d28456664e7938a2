package domain

import "errors"

var (
	// ErrInvalidTheme is returned when a theme value is not light or dark.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrInvalidLocale is returned when a locale is not supported.
	ErrInvalidLocale = errors.New("invalid locale")

	// ErrEmptyText is returned when todo text is empty after trimming.
	ErrEmptyText = errors.New("todo text cannot be empty")

	// ErrDuplicateTodo is returned when todo text collides with another item.
	ErrDuplicateTodo = errors.New("todo already exists")

	// ErrTodoNotFound is returned when no todo matches an id.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrIncompleteCity is returned when a saved city misses a required field.
	ErrIncompleteCity = errors.New("city requires name, latitude and longitude")
)
