// Package viewstate owns the client's view of the task collection: the
// in-memory task list, the active filter, and the loading flag. The Manager
// issues requests through a service.Service and reconciles the local list with
// each response; Derive projects the state for display.
package viewstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"todo/internal/logging"
	"todo/internal/service"
)

var (
	// ErrEmptyText is returned by Create for blank text. No request is made.
	ErrEmptyText = errors.New("task text required")

	// ErrTaskNotFound is returned by Toggle and Delete when the id is not in
	// the local list. No request is made.
	ErrTaskNotFound = errors.New("task not found")
)

// Manager holds the view state and mediates every change to it.
// It is safe for concurrent use. The state lock is never held across a
// backend request; toggle and delete requests for the same id are serialized.
type Manager struct {
	svc service.Service
	log *slog.Logger

	mu    sync.RWMutex
	state State

	ids *keyLock
}

// NewManager creates a manager with an empty task list and the given initial
// filter. An invalid filter falls back to FilterAll. A nil logger discards.
func NewManager(svc service.Service, filter Filter, log *slog.Logger) *Manager {
	if !filter.Valid() {
		filter = FilterAll
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{
		svc:   svc,
		log:   log,
		state: State{Filter: filter},
		ids:   newKeyLock(),
	}
}

// Load fetches the full collection and replaces the local list with it.
// Loading is set for the duration of the request and always cleared. On
// failure the previous list is kept.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	m.state.Loading = true
	m.mu.Unlock()

	m.log.Debug("loading tasks")
	tasks, err := m.svc.ListTasks(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Loading = false
	if err != nil {
		m.log.Warn("error fetching tasks", "op", "load", "err", err)
		return fmt.Errorf("fetching tasks: %w", err)
	}
	m.state.Tasks = append([]service.Task(nil), tasks...)
	m.log.Debug("loaded tasks", "count", len(tasks))
	return nil
}

// Create asks the backend to create a task and appends the returned record.
// Blank text is rejected without a request.
func (m *Manager) Create(ctx context.Context, text string) (service.Task, error) {
	if strings.TrimSpace(text) == "" {
		return service.Task{}, ErrEmptyText
	}

	created, err := m.svc.CreateTask(ctx, text)
	if err != nil {
		m.log.Warn("error adding task", "op", "create", "err", err)
		return service.Task{}, fmt.Errorf("adding task: %w", err)
	}

	m.mu.Lock()
	m.state.Tasks = append(m.state.Tasks, created)
	m.mu.Unlock()

	m.log.Debug("added task", "id", created.ID)
	return created, nil
}

// Toggle asks the backend to flip the completed flag of the task with the
// given id and replaces the local record with the server's response.
func (m *Manager) Toggle(ctx context.Context, id string) (service.Task, error) {
	unlock := m.ids.Lock(id)
	defer unlock()

	// Read after acquiring the id lock so back-to-back toggles alternate.
	m.mu.RLock()
	current, ok := findByID(m.state.Tasks, id)
	m.mu.RUnlock()
	if !ok {
		return service.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	updated, err := m.svc.SetCompleted(ctx, id, !current.Completed)
	if err != nil {
		m.log.Warn("error updating task", "op", "toggle", "id", id, "err", err)
		return service.Task{}, fmt.Errorf("updating task %s: %w", id, err)
	}
	if updated.ID == "" {
		updated.ID = id
	}

	m.mu.Lock()
	m.state.Tasks = replaceByID(m.state.Tasks, updated)
	m.mu.Unlock()

	m.log.Debug("updated task", "id", id, "completed", updated.Completed)
	return updated, nil
}

// Delete asks the backend to delete the task and removes it locally.
func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.ids.Lock(id)
	defer unlock()

	m.mu.RLock()
	_, ok := findByID(m.state.Tasks, id)
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	if err := m.svc.DeleteTask(ctx, id); err != nil {
		m.log.Warn("error deleting task", "op", "delete", "id", id, "err", err)
		return fmt.Errorf("deleting task %s: %w", id, err)
	}

	m.mu.Lock()
	m.state.Tasks = removeByID(m.state.Tasks, id)
	m.mu.Unlock()

	m.log.Debug("deleted task", "id", id)
	return nil
}

// SetFilter changes the active filter. Invalid values are rejected and the
// current filter is kept.
func (m *Manager) SetFilter(f Filter) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, string(f))
	}
	m.mu.Lock()
	m.state.Filter = f
	m.mu.Unlock()
	return nil
}

// Filter returns the active filter.
func (m *Manager) Filter() Filter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Filter
}

// View derives the current view from a snapshot of the state.
func (m *Manager) View() View {
	return Derive(m.Snapshot())
}

// Snapshot returns a copy of the state that does not alias the manager's list.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.state
	s.Tasks = append([]service.Task(nil), m.state.Tasks...)
	return s
}
