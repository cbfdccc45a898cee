// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"todo/internal/service"
	"todo/internal/viewstate"
)

const (
	// ListSeparator separates the task rows from the stats line.
	ListSeparator = "------------"
)

// Format names an output encoding for the list command.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("invalid format: %s (want text, json or yaml)", s)
}

// FormatTask formats a task row.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, two spaces, checkbox, text)
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(task.Completed), NormalizeText(task.Text))
}

// FormatStats formats the summary counts line.
func FormatStats(w io.Writer, stats viewstate.Stats) {
	fmt.Fprintf(w, "total: %d  active: %d  completed: %d\n", stats.Total, stats.Active, stats.Completed)
}

// FormatView writes the text form of a derived view: numbered rows (or the
// filter's empty message), a separator, and the stats line. Quiet drops
// everything except task rows.
func FormatView(w io.Writer, v viewstate.View, quiet bool) {
	if len(v.Tasks) == 0 {
		if !quiet {
			fmt.Fprintln(w, v.EmptyMessage)
		}
	}
	for i, task := range v.Tasks {
		FormatTask(w, i+1, task)
	}
	if quiet {
		return
	}
	fmt.Fprintln(w, ListSeparator)
	FormatStats(w, v.Stats)
}

// Write renders v in the given format.
func Write(w io.Writer, format Format, v viewstate.View, quiet bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		FormatView(w, v, quiet)
		return nil
	}
}

// Checkbox renders the completed flag.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// NormalizeText normalizes task text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func NormalizeText(text string) string {
	// Replace newlines with spaces
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
