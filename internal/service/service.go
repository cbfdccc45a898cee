// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the backend has no task with the requested id.
var ErrNotFound = errors.New("not found")

// Service defines the interface for task backend operations.
// All task collection requests go through this interface.
// Commands and the view state never talk HTTP directly.
type Service interface {
	// ListTasks returns the full task collection in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task with the given text and returns the
	// server's record, including the assigned id.
	CreateTask(ctx context.Context, text string) (Task, error)

	// SetCompleted sets the completed flag of a task and returns the
	// server's updated record.
	SetCompleted(ctx context.Context, id string, completed bool) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}
