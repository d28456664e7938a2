package domain

import (
	"fmt"
	"strings"
)

// TodoFilter selects a subset of todo items by completion state.
type TodoFilter string

const (
	FilterAll       TodoFilter = "all"
	FilterPending   TodoFilter = "pending"
	FilterCompleted TodoFilter = "completed"
)

// IsValid checks if the filter is known.
func (f TodoFilter) IsValid() bool {
	switch f {
	case FilterAll, FilterPending, FilterCompleted:
		return true
	default:
		return false
	}
}

// Next cycles all -> pending -> completed -> all.
func (f TodoFilter) Next() TodoFilter {
	switch f {
	case FilterAll:
		return FilterPending
	case FilterPending:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// ParseTodoFilter parses a string into a TodoFilter. Empty means FilterAll.
func ParseTodoFilter(value string) (TodoFilter, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return FilterAll, nil
	}
	f := TodoFilter(value)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid filter: %s (expected all, pending or completed)", value)
	}
	return f, nil
}

// FilterTodos returns the items matching filter in their original order.
// The input slice is never modified.
func FilterTodos(items []TodoItem, filter TodoFilter) []TodoItem {
	result := make([]TodoItem, 0, len(items))
	for _, item := range items {
		switch filter {
		case FilterPending:
			if item.IsDone {
				continue
			}
		case FilterCompleted:
			if !item.IsDone {
				continue
			}
		}
		result = append(result, item)
	}
	return result
}
