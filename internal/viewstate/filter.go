package viewstate

import (
	"errors"
	"fmt"
	"strings"

	"todo/internal/service"
)

// Filter is the client-side projection applied to the task list.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every valid filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ErrInvalidFilter is returned for a filter value outside the enum.
var ErrInvalidFilter = errors.New("invalid filter")

// ParseFilter parses a filter name, case-insensitive and trimmed.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q (want all, active or completed)", ErrInvalidFilter, s)
	}
	return f, nil
}

// Valid reports whether f is one of the enumerated filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Match reports whether a task belongs in the view under f.
func (f Filter) Match(t service.Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// EmptyMessage is shown in place of the list when nothing matches f.
func (f Filter) EmptyMessage() string {
	switch f {
	case FilterActive:
		return "No active tasks!"
	case FilterCompleted:
		return "No completed tasks!"
	default:
		return "No tasks yet. Add one above!"
	}
}

// Label is the capitalised button text for f.
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

func (f Filter) String() string { return string(f) }
