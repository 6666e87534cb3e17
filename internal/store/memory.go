// Package store holds the authoritative task collection in process memory.
package store

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"taskflow/internal/service"
)

// WelcomeTasks are the demo tasks a seeded store starts with.
// The last one is seeded completed.
var WelcomeTasks = []string{
	"Welcome to TaskFlow!",
	"Try adding your own task",
	"Mark tasks as complete by clicking the circle",
}

// Memory is an in-memory implementation of service.Service.
// The collection is kept newest-first; nextID is never reused.
type Memory struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int
	now    func() time.Time
}

var _ service.Service = (*Memory)(nil)

// Option configures a Memory store.
type Option func(*Memory)

// WithClock sets the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

// WithWelcomeTasks seeds the store with WelcomeTasks.
func WithWelcomeTasks() Option {
	return func(m *Memory) {
		stamp := m.now().UTC()
		for i, text := range WelcomeTasks {
			m.tasks = append(m.tasks, service.Task{
				ID:        m.nextID,
				Text:      text,
				Completed: i == len(WelcomeTasks)-1,
				CreatedAt: stamp,
			})
			m.nextID++
		}
	}
}

// New creates an empty store whose first id is 1.
// Options are applied in order, so WithClock must precede WithWelcomeTasks.
func New(opts ...Option) *Memory {
	m := &Memory{
		tasks:  []service.Task{},
		nextID: 1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Len returns the number of live tasks.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tasks)
}

// ListTasks implements service.Service.
func (m *Memory) ListTasks(ctx context.Context) ([]service.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]service.Task, len(m.tasks))
	copy(result, m.tasks)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// GetTask implements service.Service.
func (m *Memory) GetTask(ctx context.Context, id int) (service.Task, error) {
	if err := ctx.Err(); err != nil {
		return service.Task{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return service.Task{}, service.ErrNotFound
	}
	return m.tasks[i], nil
}

// CreateTask implements service.Service.
func (m *Memory) CreateTask(ctx context.Context, text string) (service.Task, string, error) {
	if err := ctx.Err(); err != nil {
		return service.Task{}, "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return service.Task{}, "", service.ErrValidation
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task := service.Task{
		ID:        m.nextID,
		Text:      text,
		Completed: false,
		CreatedAt: m.now().UTC(),
	}
	m.nextID++

	// Prepend: storage order is newest first
	m.tasks = append([]service.Task{task}, m.tasks...)
	return task, service.MsgCreated, nil
}

// UpdateTask implements service.Service.
// Whitespace-only text is ignored rather than rejected.
func (m *Memory) UpdateTask(ctx context.Context, id int, req service.UpdateRequest) (service.Task, string, error) {
	if err := ctx.Err(); err != nil {
		return service.Task{}, "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return service.Task{}, "", service.ErrNotFound
	}

	task := m.tasks[i]
	if req.Text != nil {
		if text := strings.TrimSpace(*req.Text); text != "" {
			task.Text = text
		}
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	m.tasks[i] = task

	if task.Completed {
		return task, service.MsgCompleted, nil
	}
	return task, service.MsgUpdated, nil
}

// DeleteTask implements service.Service.
func (m *Memory) DeleteTask(ctx context.Context, id int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return "", service.ErrNotFound
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	return service.MsgDeleted, nil
}

// Stats implements service.Service.
func (m *Memory) Stats(ctx context.Context) (service.Stats, error) {
	if err := ctx.Err(); err != nil {
		return service.Stats{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	completed := 0
	for _, t := range m.tasks {
		if t.Completed {
			completed++
		}
	}
	return ComputeStats(len(m.tasks), completed), nil
}

// ComputeStats derives the summary from raw counts.
// The rate is rounded to one decimal, midpoints to even.
func ComputeStats(total, completed int) service.Stats {
	s := service.Stats{
		Total:     total,
		Completed: completed,
		Pending:   total - completed,
	}
	if total > 0 {
		s.CompletionRate = math.RoundToEven(float64(completed)/float64(total)*100*10) / 10
	}
	return s
}

// indexOf returns the position of id or -1. Caller holds the lock.
func (m *Memory) indexOf(id int) int {
	if id < 1 {
		return -1
	}
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
