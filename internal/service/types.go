// Package service defines the backend-agnostic interface for task operations.
package service

// Task represents a single task record as returned by the backend.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}
