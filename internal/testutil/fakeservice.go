// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"taskflow/internal/service"
	"taskflow/internal/store"
)

// FakeService wraps an in-memory store with error injection and call
// counting, for tests that need to observe or break the backend.
type FakeService struct {
	*store.Memory

	mu    sync.Mutex
	calls map[string]int

	// Error injection for testing
	ListTasksErr  error
	GetTaskErr    error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error
	StatsErr      error
}

var _ service.Service = (*FakeService)(nil)

// NewFakeService creates a FakeService over an empty store.
func NewFakeService(opts ...store.Option) *FakeService {
	return &FakeService{
		Memory: store.New(opts...),
		calls:  make(map[string]int),
	}
}

// AddTask creates a task directly, bypassing counters and error injection.
func (f *FakeService) AddTask(text string, completed bool) service.Task {
	ctx := context.Background()
	task, _, err := f.Memory.CreateTask(ctx, text)
	if err != nil {
		panic(err)
	}
	if completed {
		task, _, err = f.Memory.UpdateTask(ctx, task.ID, service.SetCompleted(true))
		if err != nil {
			panic(err)
		}
	}
	return task
}

// Calls returns how many times the named method was invoked.
func (f *FakeService) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// TotalCalls returns the number of backend calls of any kind.
func (f *FakeService) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *FakeService) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Memory.ListTasks(ctx)
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id int) (service.Task, error) {
	f.record("GetTask")
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	return f.Memory.GetTask(ctx, id)
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, text string) (service.Task, string, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, "", f.CreateTaskErr
	}
	return f.Memory.CreateTask(ctx, text)
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int, req service.UpdateRequest) (service.Task, string, error) {
	f.record("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, "", f.UpdateTaskErr
	}
	return f.Memory.UpdateTask(ctx, id, req)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) (string, error) {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return "", f.DeleteTaskErr
	}
	return f.Memory.DeleteTask(ctx, id)
}

// Stats implements service.Service.
func (f *FakeService) Stats(ctx context.Context) (service.Stats, error) {
	f.record("Stats")
	if f.StatsErr != nil {
		return service.Stats{}, f.StatsErr
	}
	return f.Memory.Stats(ctx)
}
