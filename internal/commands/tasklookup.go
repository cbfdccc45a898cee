package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/service"
	"todo/internal/viewstate"
)

// errOutOfRange is returned when a numeric reference is past the listing.
var errOutOfRange = errors.New("task number out of range")

// newManager creates a view-state manager logging to errOut under --debug.
func newManager(cfg *config.Config, svc service.Service, filter viewstate.Filter, errOut io.Writer) *viewstate.Manager {
	return viewstate.NewManager(svc, filter, logging.New(errOut, cfg.Debug))
}

// resolveFilter returns the --filter value, or the configured default.
func resolveFilter(cfg *config.Config, flagValue string) (viewstate.Filter, error) {
	if strings.TrimSpace(flagValue) == "" {
		flagValue = cfg.DefaultFilter
	}
	if strings.TrimSpace(flagValue) == "" {
		return viewstate.FilterAll, nil
	}
	return viewstate.ParseFilter(flagValue)
}

// findTask resolves ref against the loaded manager. Numbers index the
// filtered listing; ids are matched against the whole list.
func findTask(m *viewstate.Manager, ref TaskRef) (service.Task, error) {
	if ref.ID != "" {
		for _, t := range m.Snapshot().Tasks {
			if t.ID == ref.ID {
				return t, nil
			}
		}
		return service.Task{}, fmt.Errorf("%w: %s", viewstate.ErrTaskNotFound, ref.ID)
	}

	tasks := m.View().Tasks
	if ref.Num < 1 || ref.Num > len(tasks) {
		return service.Task{}, fmt.Errorf("%w: %d", errOutOfRange, ref.Num)
	}
	return tasks[ref.Num-1], nil
}

// loadAndFind parses the reference, loads the list and resolves the task.
// On failure it reports to errOut and returns the exit code.
func loadAndFind(ctx context.Context, cfg *config.Config, svc service.Service, filterFlag string, args []string, errOut io.Writer) (*viewstate.Manager, service.Task, int) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return nil, service.Task{}, exitcode.UserError
	}

	filter, err := resolveFilter(cfg, filterFlag)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, service.Task{}, exitcode.UserError
	}

	m := newManager(cfg, svc, filter, errOut)
	if err := m.Load(ctx); err != nil {
		return nil, service.Task{}, reportBackendError(errOut, err)
	}

	task, err := findTask(m, ref)
	if err != nil {
		switch {
		case errors.Is(err, errOutOfRange):
			fmt.Fprintf(errOut, "error: task number out of range: %d\n", ref.Num)
		case errors.Is(err, viewstate.ErrTaskNotFound):
			fmt.Fprintf(errOut, "error: task not found: %s\n", ref.ID)
		default:
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return nil, service.Task{}, exitcode.UserError
	}
	return m, task, exitcode.Success
}

// reportBackendError prints a request failure and returns its exit code.
// A task that vanished server-side is a user error, like an unknown reference.
func reportBackendError(errOut io.Writer, err error) int {
	if errors.Is(err, service.ErrNotFound) || errors.Is(err, viewstate.ErrTaskNotFound) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
