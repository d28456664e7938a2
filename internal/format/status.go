package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// TodoCounts summarizes the todo list.
type TodoCounts struct {
	Total   int `json:"total"`
	Done    int `json:"done"`
	Pending int `json:"pending"`
}

// StatusData is the dashboard summary.
type StatusData struct {
	Greeting      string     `json:"greeting"`
	Name          string     `json:"name"`
	Theme         string     `json:"theme"`
	Locale        string     `json:"locale"`
	Direction     string     `json:"direction"`
	MemberSince   string     `json:"memberSince,omitempty"`
	Todos         TodoCounts `json:"todos"`
	City          string     `json:"city,omitempty"`
	Notifications int        `json:"notifications"`
}

// Labels are the localized captions used by FormatSummary.
type Labels struct {
	Progress string
	City     string
	NoCity   string
	Theme    string
	Locale   string
}

// FormatSummary writes a human readable summary.
func FormatSummary(w io.Writer, data StatusData, labels Labels) error {
	lines := []string{data.Greeting}
	if data.MemberSince != "" {
		lines = append(lines, data.MemberSince)
	}
	lines = append(lines, labels.Progress)
	if data.City != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", labels.City, data.City))
	} else {
		lines = append(lines, labels.NoCity)
	}
	lines = append(lines,
		fmt.Sprintf("%s: %s", labels.Theme, data.Theme),
		fmt.Sprintf("%s: %s", labels.Locale, data.Locale),
	)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatJSON writes status data as JSON to the writer.
func FormatJSON(w io.Writer, data StatusData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
