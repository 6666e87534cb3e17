// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// The in-memory store implements it directly; the HTTP client implements it
// over the wire. The controller and commands only see this interface.
type Service interface {
	// ListTasks returns all tasks, newest first. Never nil.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns the task with the given id or ErrNotFound.
	GetTask(ctx context.Context, id int) (Task, error)

	// CreateTask trims text and stores a new pending task.
	// Returns ErrValidation if the trimmed text is empty.
	CreateTask(ctx context.Context, text string) (Task, string, error)

	// UpdateTask applies the provided fields of req to the task.
	// The returned message tells a completion apart from other updates.
	UpdateTask(ctx context.Context, id int, req UpdateRequest) (Task, string, error)

	// DeleteTask removes the task permanently.
	DeleteTask(ctx context.Context, id int) (string, error)

	// Stats returns counts and the completion rate.
	Stats(ctx context.Context) (Stats, error)
}
