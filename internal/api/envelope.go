// Package api holds the JSON shapes shared by the task server and its clients.
package api

import (
	"encoding/json"
	"strconv"
)

// BasePath is the route prefix of the task endpoints.
const BasePath = "/api/tasks"

// Envelope wraps every response. Failures carry Success=false and a
// Message, and never Data.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// RawEnvelope is the decoding side of Envelope; Data is decoded later
// into the type the caller expects.
type RawEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// OK returns a success envelope.
func OK(data any, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

// Fail returns a failure envelope.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Text string `json:"text"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}.
type UpdateTaskRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// TaskPath returns the path of a single task.
func TaskPath(id int) string {
	return BasePath + "/" + strconv.Itoa(id)
}

// StatsPath is the path of the stats endpoint.
const StatsPath = BasePath + "/stats"

// HealthPath is the liveness endpoint.
const HealthPath = "/health"

// Messages reported in failure envelopes.
const (
	MsgNotFound      = "Task not found"
	MsgTextRequired  = "Task text is required"
	MsgInvalidBody   = "Invalid request body"
	MsgInternalError = "Internal server error"
)
