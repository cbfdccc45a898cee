// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"todo/internal/service"
)

// Call records one request made against a FakeService.
type Call struct {
	Method    string // "ListTasks", "CreateTask", "SetCompleted" or "DeleteTask"
	ID        string
	Text      string
	Completed bool
}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.Mutex
	tasks []service.Task
	calls []Call

	// Error injection for testing
	ListTasksErr    error
	CreateTaskErr   error
	SetCompletedErr error
	DeleteTaskErr   error

	// BeforeSetCompleted, if set, runs before an update is applied and
	// outside the fake's lock.
	BeforeSetCompleted func(id string, completed bool)
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask adds a task directly to the fake collection without recording a call.
func (f *FakeService) AddTask(id, text string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Text: text, Completed: completed})
}

// Tasks returns a copy of the fake collection.
func (f *FakeService) Tasks() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task(nil), f.tasks...)
}

// Calls returns the requests made so far, in order.
func (f *FakeService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns how many requests of the given method were made.
func (f *FakeService) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *FakeService) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record(Call{Method: "ListTasks"})
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, text string) (service.Task, error) {
	f.record(Call{Method: "CreateTask", Text: text})
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	t := service.Task{ID: uuid.NewString(), Text: text}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// SetCompleted implements service.Service.
func (f *FakeService) SetCompleted(ctx context.Context, id string, completed bool) (service.Task, error) {
	f.record(Call{Method: "SetCompleted", ID: id, Completed: completed})
	if f.BeforeSetCompleted != nil {
		f.BeforeSetCompleted(id, completed)
	}
	if f.SetCompletedErr != nil {
		return service.Task{}, f.SetCompletedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Completed = completed
			return f.tasks[i], nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.record(Call{Method: "DeleteTask", ID: id})
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}
