package tui

import (
	"fmt"
	"strings"

	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/format"
	"github.com/daybook-app/daybook/internal/i18n"
)

// View implements tea.Model.
func (m *Model) View() string {
	data := m.client.Dashboard()
	rtl := data.Direction == i18n.RTL
	line := func(s string) string { return format.Align(s, m.width, rtl) }
	s := m.styles

	var b strings.Builder
	b.WriteString(line(s.Title.Render(data.Greeting)))
	b.WriteString("\n")
	b.WriteString(line(s.Header.Render(m.client.T("todo_list_title")) + "  " +
		s.Muted.Render(m.client.T("todo_counts", data.Todos.Done, data.Todos.Total))))
	b.WriteString("\n")
	b.WriteString(line(s.Muted.Render(m.client.T("filter_label", m.client.T("filter."+string(m.prefs.Filter))) +
		"  " + m.client.T("sort_label", m.client.T("sort."+string(m.prefs.Sort))))))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(s.Header.Render(m.client.T("add_todo")) + "\n" + m.input.View())
	case modeEdit:
		b.WriteString(s.Header.Render(m.client.T("edit_todo")) + "\n" + m.input.View())
	case modeConfirmClear:
		b.WriteString(line(s.Title.Render(m.client.T("confirm_clear"))))
	}
	b.WriteString("\n")

	for _, n := range m.visibleToasts() {
		b.WriteString(line(s.RenderToast(n)))
		b.WriteString("\n")
	}
	b.WriteString(s.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// visibleToasts returns the newest notifications, oldest first.
func (m *Model) visibleToasts() []domain.Notification {
	if len(m.toasts) <= maxToasts {
		return m.toasts
	}
	return m.toasts[len(m.toasts)-maxToasts:]
}

func (m *Model) renderList() string {
	if len(m.items) == 0 {
		return m.styles.Muted.Render(m.client.T("todo_empty_list"))
	}
	rtl := m.client.Language().Direction() == i18n.RTL
	rows := make([]string, 0, len(m.items))
	for i, item := range m.items {
		style := m.styles.Pending
		if item.IsDone {
			style = m.styles.Done
		}
		text := fmt.Sprintf("%s %s", format.Mark(item.IsDone), format.Truncate(item.Text, max(10, m.width-8)))
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
			style = m.styles.Selected
		}
		rows = append(rows, format.Align(cursor+style.Render(text), m.width, rtl))
	}
	return strings.Join(rows, "\n")
}
