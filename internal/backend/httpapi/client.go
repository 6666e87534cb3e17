// Package httpapi implements the service.Service interface over the task HTTP API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/googleapi"

	"taskflow/internal/api"
	"taskflow/internal/service"
)

// APITimeout is the default timeout for API calls.
const APITimeout = 5 * time.Second

// Client implements service.Service against a running task server.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

var _ service.Service = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url: %s", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    http.DefaultClient,
		timeout: APITimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListTasks returns all tasks, newest first.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if _, err := c.do(ctx, http.MethodGet, api.BasePath, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// GetTask returns a single task.
func (c *Client) GetTask(ctx context.Context, id int) (service.Task, error) {
	var task service.Task
	if _, err := c.do(ctx, http.MethodGet, api.TaskPath(id), nil, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, text string) (service.Task, string, error) {
	var task service.Task
	msg, err := c.do(ctx, http.MethodPost, api.BasePath, api.CreateTaskRequest{Text: text}, &task)
	if err != nil {
		return service.Task{}, "", err
	}
	return task, msg, nil
}

// UpdateTask sends the provided fields of req.
func (c *Client) UpdateTask(ctx context.Context, id int, req service.UpdateRequest) (service.Task, string, error) {
	body := api.UpdateTaskRequest{Text: req.Text, Completed: req.Completed}

	var task service.Task
	msg, err := c.do(ctx, http.MethodPut, api.TaskPath(id), body, &task)
	if err != nil {
		return service.Task{}, "", err
	}
	return task, msg, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) (string, error) {
	return c.do(ctx, http.MethodDelete, api.TaskPath(id), nil, nil)
}

// Stats returns the collection summary.
func (c *Client) Stats(ctx context.Context) (service.Stats, error) {
	var stats service.Stats
	if _, err := c.do(ctx, http.MethodGet, api.StatsPath, nil, &stats); err != nil {
		return service.Stats{}, err
	}
	return stats, nil
}

// do performs one API call and decodes the envelope data into out.
// Returns the envelope message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api call failed", "method", method, "path", path, "error", err)
		return "", wrapError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if err := googleapi.CheckResponse(resp); err != nil {
		return "", wrapError(err)
	}

	var env api.RawEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("invalid response from server: %w", err)
	}
	if !env.Success {
		return "", fmt.Errorf("server error: %s", env.Message)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("invalid response data: %w", err)
		}
	}
	return env.Message, nil
}

// wrapError maps HTTP and network failures onto the service error taxonomy.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		msg := envelopeMessage(gErr.Body)
		switch gErr.Code {
		case http.StatusNotFound:
			return service.ErrNotFound
		case http.StatusBadRequest:
			if msg == "" || msg == api.MsgTextRequired {
				return service.ErrValidation
			}
			return fmt.Errorf("bad request: %s", msg)
		}
		if msg == "" {
			msg = http.StatusText(gErr.Code)
		}
		return fmt.Errorf("server error (%d): %s", gErr.Code, msg)
	}

	// Caller cancellation is not a transport failure
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", service.ErrTransport)
	}
	return fmt.Errorf("%w: %v", service.ErrTransport, err)
}

// envelopeMessage extracts the message of a failure envelope body.
func envelopeMessage(body string) string {
	var env api.RawEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return ""
	}
	return env.Message
}
