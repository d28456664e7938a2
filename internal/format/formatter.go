// Package format renders todo lists and dashboard summaries for CLI output.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/daybook-app/daybook/internal/domain"
)

// Formatter writes a todo list in one output style.
type Formatter interface {
	FormatTodos(items []domain.TodoItem, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple prints a check mark, the id and the text.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeCompact prints only the text, one item per line.
	FormatterTypeCompact FormatterType = "compact"

	// FormatterTypeTable prints a bordered table styled for the active theme.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeJSON prints the stored JSON representation.
	FormatterTypeJSON FormatterType = "json"
)

// ParseFormatterType validates a --format value. Empty means simple.
func ParseFormatterType(s string) (FormatterType, error) {
	switch t := FormatterType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return FormatterTypeSimple, nil
	case FormatterTypeSimple, FormatterTypeCompact, FormatterTypeTable, FormatterTypeJSON:
		return t, nil
	default:
		return "", fmt.Errorf("unknown format: %s (want simple, compact, table or json)", s)
	}
}

// NewFormatter creates a formatter of the given type. Table output uses styles.
func NewFormatter(formatterType FormatterType, styles Styles) Formatter {
	switch formatterType {
	case FormatterTypeCompact:
		return CompactFormatter{}
	case FormatterTypeTable:
		return TableFormatter{Styles: styles}
	case FormatterTypeJSON:
		return JSONFormatter{}
	default:
		return SimpleFormatter{}
	}
}
