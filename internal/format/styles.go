package format

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/daybook-app/daybook/internal/domain"
)

// Palette holds the colors of one theme.
type Palette struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Border  lipgloss.Color
	Surface lipgloss.Color
}

var (
	lightPalette = Palette{
		Text:    "#2B2F42",
		Muted:   "#6C7086",
		Accent:  "#4F7CAC",
		Success: "#4E7C5A",
		Error:   "#C34043",
		Warning: "#CC6B4E",
		Border:  "#B5BDC5",
		Surface: "#EFF1F8",
	}
	darkPalette = Palette{
		Text:    "#DCD7BA",
		Muted:   "#727169",
		Accent:  "#7FB4CA",
		Success: "#98BB6C",
		Error:   "#FF5D62",
		Warning: "#FFA066",
		Border:  "#363646",
		Surface: "#1F1F28",
	}
)

// PaletteFor returns the palette of theme. Unknown themes get the light palette.
func PaletteFor(theme domain.Theme) Palette {
	if theme == domain.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// Styles are the lipgloss styles shared by table output and the dashboard.
type Styles struct {
	Theme    domain.Theme
	Palette  Palette
	Title    lipgloss.Style
	Header   lipgloss.Style
	Border   lipgloss.Style
	Pending  lipgloss.Style
	Done     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Toast    lipgloss.Style
}

// NewStyles builds the styles for theme.
func NewStyles(theme domain.Theme) Styles {
	p := PaletteFor(theme)
	return Styles{
		Theme:    theme,
		Palette:  p,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Border:   lipgloss.NewStyle().Foreground(p.Border),
		Pending:  lipgloss.NewStyle().Foreground(p.Text),
		Done:     lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Background(p.Surface),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Help:     lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		Toast:    lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder(), false, false, false, true),
	}
}

// ToastColor returns the accent color of a notification type.
func (s Styles) ToastColor(typ domain.NotificationType) lipgloss.Color {
	switch typ {
	case domain.NotificationError, domain.NotificationDelete:
		return s.Palette.Error
	case domain.NotificationSuccess, domain.NotificationAdd, domain.NotificationComplete, domain.NotificationCitySaved:
		return s.Palette.Success
	case domain.NotificationEdit, domain.NotificationReopen:
		return s.Palette.Warning
	default:
		return s.Palette.Accent
	}
}

// RenderToast renders one notification line.
func (s Styles) RenderToast(n domain.Notification) string {
	c := s.ToastColor(n.Type)
	return s.Toast.BorderForeground(c).Foreground(c).Render(n.Message)
}

// Align pads text to width, right-aligned for right-to-left locales.
func Align(text string, width int, rtl bool) string {
	if width <= 0 {
		return text
	}
	pos := lipgloss.Left
	if rtl {
		pos = lipgloss.Right
	}
	return lipgloss.PlaceHorizontal(width, pos, text)
}
