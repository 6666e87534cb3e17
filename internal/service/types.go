// Package service defines the backend-agnostic interface for task operations.
package service

import "time"

// Task represents a single task item.
type Task struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats summarizes the task collection.
type Stats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	CompletionRate float64 `json:"completionRate"`
}

// UpdateRequest carries the optional fields of an update.
// A nil field is left unchanged.
type UpdateRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// SetText returns an update replacing the text.
func SetText(text string) UpdateRequest {
	return UpdateRequest{Text: &text}
}

// SetCompleted returns an update replacing the completion flag.
func SetCompleted(completed bool) UpdateRequest {
	return UpdateRequest{Completed: &completed}
}

// Confirmation messages returned alongside successful mutations.
const (
	MsgCreated   = "Task created successfully"
	MsgUpdated   = "Task updated successfully"
	MsgCompleted = "Task completed!"
	MsgDeleted   = "Task deleted successfully"
)
