package domain

import (
	"fmt"
	"sort"
	"strings"
)

// TodoSort orders a todo view.
type TodoSort string

const (
	// SortNewest orders by id descending, which is creation time descending.
	SortNewest TodoSort = "newest"
	// SortOldest orders by id ascending.
	SortOldest TodoSort = "oldest"
	// SortAlphabetical orders by normalized text, ties broken by id.
	SortAlphabetical TodoSort = "alphabetical"
)

// IsValid checks if the sort is known.
func (s TodoSort) IsValid() bool {
	switch s {
	case SortNewest, SortOldest, SortAlphabetical:
		return true
	default:
		return false
	}
}

// Next cycles newest -> oldest -> alphabetical -> newest.
func (s TodoSort) Next() TodoSort {
	switch s {
	case SortNewest:
		return SortOldest
	case SortOldest:
		return SortAlphabetical
	default:
		return SortNewest
	}
}

// ParseTodoSort parses a string into a TodoSort. Empty means SortNewest.
func ParseTodoSort(value string) (TodoSort, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "":
		return SortNewest, nil
	case "alpha", "name":
		return SortAlphabetical, nil
	}
	s := TodoSort(value)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid sort: %s (expected newest, oldest or alphabetical)", value)
	}
	return s, nil
}

// SortTodos returns a sorted copy of items.
func SortTodos(items []TodoItem, order TodoSort) []TodoItem {
	sorted := make([]TodoItem, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch order {
		case SortOldest:
			return a.ID < b.ID
		case SortAlphabetical:
			na, nb := NormalizeText(a.Text), NormalizeText(b.Text)
			if na != nb {
				return na < nb
			}
			return a.ID < b.ID
		default:
			return a.ID > b.ID
		}
	})
	return sorted
}
