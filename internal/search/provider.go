// Package search matches todo items against a query. The substring, regex and
// token strategies share the Provider interface so the CLI and the dashboard
// filter the same way.
package search

import (
	"fmt"
	"strings"

	"github.com/daybook-app/daybook/internal/domain"
)

// Search modes accepted by NewProvider.
const (
	ModeSubstring = "substring"
	ModeRegex     = "regex"
	ModeToken     = "token"
)

// Searchable fields.
const (
	FieldText   = "text"
	FieldStatus = "status"
)

// Provider defines the interface for search providers.
type Provider interface {
	// Match returns true if item matches query. An empty query matches everything.
	Match(item domain.TodoItem, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case
	Fields          []string // Fields to search in
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
		Fields:          []string{FieldText},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in: "text" and "status".
func WithFields(fields ...string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewProvider returns the provider for mode. Empty means substring.
func NewProvider(mode string, opts ...Option) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeSubstring:
		return NewSubstringProvider(opts...), nil
	case ModeRegex:
		return NewRegexProvider(opts...), nil
	case ModeToken:
		return NewTokenProvider(opts...), nil
	default:
		return nil, fmt.Errorf("invalid search mode: %s (expected substring, regex or token)", mode)
	}
}

// Filter returns the items p matches, keeping their order.
func Filter(items []domain.TodoItem, p Provider, query string) []domain.TodoItem {
	result := make([]domain.TodoItem, 0, len(items))
	for _, item := range items {
		if p.Match(item, query) {
			result = append(result, item)
		}
	}
	return result
}

// fieldValues returns the searchable text of item for each configured field.
func fieldValues(item domain.TodoItem, fields []string) []string {
	values := make([]string, 0, len(fields))
	for _, field := range fields {
		switch field {
		case FieldText:
			values = append(values, item.Text)
		case FieldStatus:
			values = append(values, statusOf(item))
		}
	}
	return values
}

func statusOf(item domain.TodoItem) string {
	if item.IsDone {
		return "done"
	}
	return "pending"
}
