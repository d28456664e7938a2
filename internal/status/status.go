// Package status renders a one-line todo summary for shell prompts and tmux status bars.
package status

import (
	"fmt"
	"strings"

	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/format"
)

// Panel formats.
const (
	FormatCompact   = "compact"
	FormatDetailed  = "detailed"
	FormatCountOnly = "count-only"
)

const defaultColors = "pending:yellow,done:green"

// PanelOptions holds parameters for the status panel.
type PanelOptions struct {
	Format  string // "compact", "detailed", "count-only"
	Enabled bool
	// Colors maps "pending" and "done" to tmux color names. Empty values print plain text.
	Colors map[string]string
}

// OptionsFromConfig reads status_format, status_enabled and status_colors.
func OptionsFromConfig() PanelOptions {
	return PanelOptions{
		Format:  config.Get("status_format", FormatCompact),
		Enabled: config.GetBool("status_enabled", true),
		Colors:  ParseColors(config.Get("status_colors", defaultColors)),
	}
}

// ParseColors parses "pending:yellow,done:green".
func ParseColors(s string) map[string]string {
	m := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			m[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return m
}

// RunStatusPanel returns the panel text for counts. Nothing is printed when
// the panel is disabled or the list is empty.
func RunStatusPanel(counts format.TodoCounts, opts PanelOptions) (string, error) {
	if !opts.Enabled || counts.Total == 0 {
		return "", nil
	}

	f := opts.Format
	if f == "" {
		f = FormatCompact
	}
	switch f {
	case FormatCompact:
		if counts.Pending == 0 {
			return colorize(opts.Colors["done"], "✓"), nil
		}
		return colorize(opts.Colors["pending"], fmt.Sprintf("☐ %d", counts.Pending)), nil
	case FormatDetailed:
		var parts []string
		if counts.Done > 0 {
			parts = append(parts, colorize(opts.Colors["done"], fmt.Sprintf("✓%d", counts.Done)))
		}
		if counts.Pending > 0 {
			parts = append(parts, colorize(opts.Colors["pending"], fmt.Sprintf("☐%d", counts.Pending)))
		}
		return strings.Join(parts, " "), nil
	case FormatCountOnly:
		if counts.Pending == 0 {
			return "", nil
		}
		return fmt.Sprintf("%d", counts.Pending), nil
	default:
		return "", fmt.Errorf("unknown format: %s", f)
	}
}

func colorize(color, text string) string {
	if color == "" {
		return text
	}
	return fmt.Sprintf("#[fg=%s]%s#[default]", color, text)
}
