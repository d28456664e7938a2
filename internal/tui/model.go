// Package tui implements the interactive dashboard.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/domain"
	derrors "github.com/daybook-app/daybook/internal/errors"
	"github.com/daybook-app/daybook/internal/format"
	"github.com/daybook-app/daybook/internal/i18n"
	"github.com/daybook-app/daybook/internal/notify"
	"github.com/daybook-app/daybook/internal/settings"
)

const (
	chromeLines       = 9
	minListHeight     = 3
	defaultWidth      = 80
	defaultListHeight = 12
	maxToasts         = 3
)

// Client is what the dashboard needs from the application.
type Client interface {
	AddTodo(ctx context.Context, text string) (domain.TodoItem, error)
	ToggleTodo(id int64) (domain.TodoItem, error)
	EditTodo(id int64, text string) (domain.TodoItem, error)
	RemoveTodo(ctx context.Context, id int64) (domain.TodoItem, error)
	ClearTodos(ctx context.Context) (int, error)
	ListTodos(filter domain.TodoFilter, order domain.TodoSort) []domain.TodoItem
	ToggleTheme(ctx context.Context) (domain.Theme, error)
	SetLocale(ctx context.Context, value string) (bool, error)
	ViewPreferences() settings.ViewPreferences
	SaveViewPreferences(prefs settings.ViewPreferences) error
	Dashboard() format.StatusData
	Theme() domain.Theme
	Language() *i18n.Switcher
	Notifications() *notify.Store
	Handler() derrors.ErrorHandler
	T(key string, args ...any) string
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmClear
)

type notificationsMsg []domain.Notification

// Model is the bubbletea model of the dashboard.
type Model struct {
	client  Client
	ctx     context.Context
	handler derrors.ErrorHandler

	keys     keyMap
	help     help.Model
	input    textinput.Model
	viewport viewport.Model
	styles   format.Styles

	mode   mode
	editID int64
	items  []domain.TodoItem
	cursor int
	prefs  settings.ViewPreferences
	toasts []domain.Notification
	width  int

	updates     chan []domain.Notification
	unsubscribe func()
}

// New creates the dashboard model and subscribes it to notifications.
func New(ctx context.Context, client Client) *Model {
	if client == nil {
		panic("tui.New: client dependency cannot be nil")
	}
	input := textinput.New()
	input.CharLimit = 200
	input.Prompt = "> "

	m := &Model{
		client:   client,
		ctx:      ctx,
		handler:  client.Handler(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    input,
		viewport: viewport.New(defaultWidth, defaultListHeight),
		prefs:    client.ViewPreferences(),
		width:    defaultWidth,
		updates:  make(chan []domain.Notification, 1),
	}
	m.toasts = client.Notifications().List()
	m.unsubscribe = client.Notifications().Subscribe(m.push)
	m.refresh()
	return m
}

// push delivers the latest snapshot, replacing one not yet consumed.
func (m *Model) push(list []domain.Notification) {
	for {
		select {
		case m.updates <- list:
			return
		default:
			select {
			case <-m.updates:
			default:
			}
		}
	}
}

func (m *Model) waitForNotifications() tea.Cmd {
	return func() tea.Msg {
		select {
		case list := <-m.updates:
			return notificationsMsg(list)
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Close stops the notification subscription.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForNotifications()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.handleWindowSizeMsg(msg)
		return m, nil
	case notificationsMsg:
		m.toasts = msg
		return m, m.waitForNotifications()
	}
	return m, nil
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.help.Width = msg.Width
	m.input.Width = msg.Width - 4
	m.viewport.Width = msg.Width
	m.viewport.Height = max(minListHeight, msg.Height-chromeLines)
	m.syncViewport()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAdd, modeEdit:
		return m.handleInputKey(msg)
	case modeConfirmClear:
		return m.handleConfirmation(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Add):
		return m, m.startInput(modeAdd, 0, "")
	case key.Matches(msg, m.keys.Edit):
		if item, ok := m.selected(); ok {
			return m, m.startInput(modeEdit, item.ID, item.Text)
		}
	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.selected(); ok {
			_, err := m.client.ToggleTodo(item.ID)
			m.report(err)
			m.refresh()
		}
	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selected(); ok {
			_, err := m.client.RemoveTodo(m.ctx, item.ID)
			m.report(err)
			m.refresh()
		}
	case key.Matches(msg, m.keys.Clear):
		if len(m.items) > 0 {
			m.mode = modeConfirmClear
		}
	case key.Matches(msg, m.keys.Filter):
		m.prefs.Filter = m.prefs.Filter.Next()
		m.savePrefs()
	case key.Matches(msg, m.keys.Sort):
		m.prefs.Sort = m.prefs.Sort.Next()
		m.savePrefs()
	case key.Matches(msg, m.keys.Theme):
		_, err := m.client.ToggleTheme(m.ctx)
		m.report(err)
		m.refresh()
	case key.Matches(msg, m.keys.Locale):
		next := domain.LocaleFarsi
		if m.client.Language().Locale() == domain.LocaleFarsi {
			next = domain.LocaleEnglish
		}
		_, err := m.client.SetLocale(m.ctx, next.String())
		m.report(err)
		m.refresh()
	case key.Matches(msg, m.keys.Dismiss):
		for _, n := range m.toasts {
			m.client.Notifications().Remove(n.ID)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopInput()
		return m, nil
	case tea.KeyEnter:
		m.submitInput()
		return m, nil
	case tea.KeyCtrlC:
		m.Close()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	if msg.Type == tea.KeyCtrlC {
		m.Close()
		return m, tea.Quit
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && (msg.Runes[0] == 'y' || msg.Runes[0] == 'Y') {
		_, err := m.client.ClearTodos(m.ctx)
		m.report(err)
		m.refresh()
	}
	return m, nil
}

func (m *Model) startInput(next mode, id int64, value string) tea.Cmd {
	m.mode = next
	m.editID = id
	m.input.Placeholder = m.client.T("todo_placeholder")
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopInput() {
	m.mode = modeList
	m.editID = 0
	m.input.Blur()
	m.input.Reset()
}

// submitInput keeps the input open when the text was rejected.
func (m *Model) submitInput() {
	var err error
	if m.mode == modeAdd {
		_, err = m.client.AddTodo(m.ctx, m.input.Value())
	} else {
		_, err = m.client.EditTodo(m.editID, m.input.Value())
	}
	m.report(err)
	if errors.Is(err, domain.ErrEmptyText) || errors.Is(err, domain.ErrDuplicateTodo) {
		return
	}
	m.stopInput()
	m.refresh()
}

// report shows errors the use-cases did not already announce.
func (m *Model) report(err error) {
	if err == nil || errors.Is(err, domain.ErrEmptyText) || errors.Is(err, domain.ErrDuplicateTodo) {
		return
	}
	colors.StructuredWarn("tui", "action", "failed", err, "", nil)
	derrors.Report(m.handler, err)
}

func (m *Model) savePrefs() {
	if err := m.client.SaveViewPreferences(m.prefs); err != nil {
		m.report(err)
	}
	m.refresh()
}

func (m *Model) selected() (domain.TodoItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return domain.TodoItem{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.syncViewport()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// refresh reloads the visible list and the theme styles.
func (m *Model) refresh() {
	m.items = m.client.ListTodos(m.prefs.Filter, m.prefs.Sort)
	m.styles = format.NewStyles(m.client.Theme())
	m.clampCursor()
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.viewport.SetContent(m.renderList())
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if h := m.viewport.Height; h > 0 && m.cursor >= m.viewport.YOffset+h {
		m.viewport.SetYOffset(m.cursor - h + 1)
	}
}
