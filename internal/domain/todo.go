package domain

import "strings"

// TodoItem is one entry of the persisted todo list.
type TodoItem struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	IsDone bool   `json:"isDone"`
}

// NormalizeText returns the comparison form of todo text: trimmed and case-folded.
// It is used only for equality checks and is never stored.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SameText reports whether a and b are duplicates under NormalizeText.
func SameText(a, b string) bool {
	return NormalizeText(a) == NormalizeText(b)
}

// NextTodoID returns candidate unless it collides with or precedes an existing id,
// in which case the maximum id plus one is returned.
func NextTodoID(items []TodoItem, candidate int64) int64 {
	var max int64
	for _, item := range items {
		if item.ID > max {
			max = item.ID
		}
	}
	if candidate <= max {
		return max + 1
	}
	return candidate
}
