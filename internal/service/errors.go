package service

import "errors"

var (
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")

	// ErrValidation is returned when required task text is empty.
	ErrValidation = errors.New("task text is required")

	// ErrTransport is returned when the backend cannot be reached.
	ErrTransport = errors.New("connection error")
)
