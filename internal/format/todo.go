package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/daybook-app/daybook/internal/domain"
)

const maxTextWidth = 60

// Mark returns the check box for an item.
func Mark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// Truncate shortens s to at most width runes, ending with an ellipsis.
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// SimpleFormatter prints "[x] <id>  <text>".
type SimpleFormatter struct{}

// FormatTodos implements Formatter.
func (SimpleFormatter) FormatTodos(items []domain.TodoItem, writer io.Writer) error {
	for _, item := range items {
		if _, err := fmt.Fprintf(writer, "%s %-13d  %s\n", Mark(item.IsDone), item.ID, Truncate(item.Text, maxTextWidth)); err != nil {
			return err
		}
	}
	return nil
}

// CompactFormatter prints only the text.
type CompactFormatter struct{}

// FormatTodos implements Formatter.
func (CompactFormatter) FormatTodos(items []domain.TodoItem, writer io.Writer) error {
	for _, item := range items {
		if _, err := fmt.Fprintln(writer, item.Text); err != nil {
			return err
		}
	}
	return nil
}

// TableFormatter prints a bordered table.
type TableFormatter struct {
	Styles Styles
}

// FormatTodos implements Formatter. Empty lists print nothing.
func (f TableFormatter) FormatTodos(items []domain.TodoItem, writer io.Writer) error {
	if len(items) == 0 {
		return nil
	}
	s := f.Styles
	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Border).
		Headers("", "ID", "TASK").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return s.Header.Padding(0, 1)
			}
			if row >= 0 && row < len(items) && items[row].IsDone {
				return s.Done.Padding(0, 1)
			}
			return s.Pending.Padding(0, 1)
		})
	for _, item := range items {
		t.Row(Mark(item.IsDone), strconv.FormatInt(item.ID, 10), Truncate(item.Text, maxTextWidth))
	}
	_, err := fmt.Fprintln(writer, t.Render())
	return err
}

// JSONFormatter prints the list as indented JSON. An empty list prints [].
type JSONFormatter struct{}

// FormatTodos implements Formatter.
func (JSONFormatter) FormatTodos(items []domain.TodoItem, writer io.Writer) error {
	if items == nil {
		items = []domain.TodoItem{}
	}
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}
