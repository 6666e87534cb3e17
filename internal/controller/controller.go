// Package controller keeps a local view of the task collection in sync with
// a task service and applies presentation-only filtering on top of it.
//
// Front ends drive a Controller through its action methods and re-render
// from View whenever the change hook fires.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"taskflow/internal/service"
)

var (
	// ErrEmptyText is returned when an add or edit is submitted blank.
	ErrEmptyText = errors.New("task text is empty")

	// ErrNotEditing is returned by SaveEdit when no task is in edit mode.
	ErrNotEditing = errors.New("no task is being edited")

	// ErrBusy is returned when a delete is requested while another is in flight.
	ErrBusy = errors.New("another delete is in progress")

	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled")
)

// Notification messages shown by the controller.
const (
	MsgEnterTask       = "Please enter a task!"
	MsgConnectionError = "Connection error. Please try again."
	MsgAddedFallback   = "Task added successfully!"
	MsgUpdatedFallback = "Task updated!"
	MsgDeletedFallback = "Task deleted!"

	// DeletePrompt is the question asked before a delete.
	DeletePrompt = "Are you sure you want to delete this task?"
)

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient message for the user.
type Notification struct {
	Level   Level
	Message string
}

// Notifier shows notifications.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) { f(n) }

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// View is a snapshot of controller state.
type View struct {
	Tasks            []service.Task
	Visible          []service.Task
	Filter           Filter
	Search           string
	EditingID        int
	Loading          bool
	DeleteInProgress bool
	Total            int
	Completed        int
}

// Editing returns the task in edit mode, if any.
func (v View) Editing() (service.Task, bool) {
	if v.EditingID == 0 {
		return service.Task{}, false
	}
	return findTask(v.Tasks, v.EditingID)
}

// Controller holds client state for one user session.
// Safe for concurrent use; the lock is never held across service calls.
type Controller struct {
	svc       service.Service
	notifier  Notifier
	confirmer Confirmer
	onChange  func(View)

	mu        sync.Mutex
	tasks     []service.Task
	filter    Filter
	search    string
	editingID int
	inflight  int
	deleting  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets where notifications go. Default discards them.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithConfirmer sets how deletes are confirmed. Default declines.
func WithConfirmer(cf Confirmer) Option {
	return func(c *Controller) { c.confirmer = cf }
}

// WithOnChange registers a hook called with a fresh View after every state change.
func WithOnChange(fn func(View)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// New creates a controller over svc with an empty task list.
func New(svc service.Service, opts ...Option) *Controller {
	c := &Controller{
		svc:       svc,
		notifier:  NotifierFunc(func(Notification) {}),
		confirmer: ConfirmerFunc(func(context.Context, string) (bool, error) { return false, nil }),
		tasks:     []service.Task{},
		filter:    FilterAll,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// View returns the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() View {
	tasks := make([]service.Task, len(c.tasks))
	copy(tasks, c.tasks)

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}

	return View{
		Tasks:            tasks,
		Visible:          Apply(tasks, c.filter, c.search),
		Filter:           c.filter,
		Search:           c.search,
		EditingID:        c.editingID,
		Loading:          c.inflight > 0,
		DeleteInProgress: c.deleting,
		Total:            len(tasks),
		Completed:        completed,
	}
}

// mutate applies fn under the lock, then fires the change hook.
func (c *Controller) mutate(fn func()) {
	c.mu.Lock()
	fn()
	v := c.snapshot()
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(v)
	}
}

func (c *Controller) begin() { c.mutate(func() { c.inflight++ }) }
func (c *Controller) end()   { c.mutate(func() { c.inflight-- }) }

func (c *Controller) notify(level Level, msg string) {
	c.notifier.Notify(Notification{Level: level, Message: msg})
}

// fail notifies the user about err. Caller cancellation is silent.
func (c *Controller) fail(err error) {
	switch {
	case errors.Is(err, context.Canceled):
		return
	case errors.Is(err, service.ErrTransport):
		c.notify(LevelError, MsgConnectionError)
	default:
		c.notify(LevelError, err.Error())
	}
}

func (c *Controller) succeed(msg, fallback string) {
	if msg == "" {
		msg = fallback
	}
	c.notify(LevelSuccess, msg)
}

// Load fetches the full task list. On failure the list becomes empty.
func (c *Controller) Load(ctx context.Context) error {
	c.begin()
	defer c.end()
	return c.refresh(ctx)
}

func (c *Controller) refresh(ctx context.Context) error {
	tasks, err := c.svc.ListTasks(ctx)
	if err != nil {
		c.mutate(func() { c.tasks = []service.Task{} })
		c.fail(err)
		return err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}

	c.mutate(func() {
		c.tasks = tasks
		if _, ok := findTask(tasks, c.editingID); !ok {
			c.editingID = 0
		}
	})
	return nil
}

// Add creates a task from text and refetches the list.
// Blank text is rejected without calling the service.
func (c *Controller) Add(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		c.notify(LevelError, MsgEnterTask)
		return ErrEmptyText
	}

	c.begin()
	defer c.end()

	_, msg, err := c.svc.CreateTask(ctx, text)
	if err != nil {
		c.fail(err)
		return err
	}
	if err := c.refresh(ctx); err != nil {
		return err
	}
	c.succeed(msg, MsgAddedFallback)
	return nil
}

// Toggle inverts the completion flag of task id.
// It does nothing while that task is being edited.
func (c *Controller) Toggle(ctx context.Context, id int) error {
	c.mu.Lock()
	editing := c.editingID != 0 && c.editingID == id
	task, ok := findTask(c.tasks, id)
	c.mu.Unlock()

	if editing {
		return nil
	}
	if !ok {
		c.fail(service.ErrNotFound)
		return service.ErrNotFound
	}

	c.begin()
	defer c.end()

	_, msg, err := c.svc.UpdateTask(ctx, id, service.SetCompleted(!task.Completed))
	if err != nil {
		c.fail(err)
		return err
	}
	if err := c.refresh(ctx); err != nil {
		return err
	}
	c.succeed(msg, MsgUpdatedFallback)
	return nil
}

// StartEdit puts task id in edit mode, ending any other edit.
func (c *Controller) StartEdit(id int) error {
	var err error
	c.mutate(func() {
		if _, ok := findTask(c.tasks, id); !ok {
			err = service.ErrNotFound
			return
		}
		c.editingID = id
	})
	return err
}

// CancelEdit leaves edit mode without saving.
func (c *Controller) CancelEdit() {
	c.mutate(func() { c.editingID = 0 })
}

// SaveEdit replaces the text of the task in edit mode.
// Blank text keeps edit mode and makes no service call.
func (c *Controller) SaveEdit(ctx context.Context, text string) error {
	c.mu.Lock()
	id := c.editingID
	c.mu.Unlock()

	if id == 0 {
		return ErrNotEditing
	}
	text = strings.TrimSpace(text)
	if text == "" {
		c.notify(LevelError, MsgEnterTask)
		return ErrEmptyText
	}

	c.begin()
	defer c.end()

	_, msg, err := c.svc.UpdateTask(ctx, id, service.SetText(text))
	if err != nil {
		c.fail(err)
		return err
	}
	c.mutate(func() {
		if c.editingID == id {
			c.editingID = 0
		}
	})
	if err := c.refresh(ctx); err != nil {
		return err
	}
	c.succeed(msg, MsgUpdatedFallback)
	return nil
}

// Delete removes task id after the user confirms.
// Only one delete runs at a time; the guard is raised before the prompt.
func (c *Controller) Delete(ctx context.Context, id int) error {
	busy := false
	c.mutate(func() {
		if c.deleting {
			busy = true
			return
		}
		c.deleting = true
	})
	if busy {
		return ErrBusy
	}
	defer c.mutate(func() { c.deleting = false })

	ok, err := c.confirmer.Confirm(ctx, DeletePrompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}

	c.begin()
	defer c.end()

	msg, err := c.svc.DeleteTask(ctx, id)
	if err != nil {
		c.fail(err)
		return err
	}
	c.mutate(func() {
		if c.editingID == id {
			c.editingID = 0
		}
	})
	if err := c.refresh(ctx); err != nil {
		return err
	}
	c.succeed(msg, MsgDeletedFallback)
	return nil
}

// SetFilter changes the status filter. No service call is made.
func (c *Controller) SetFilter(f Filter) {
	c.mutate(func() { c.filter = f })
}

// SetSearch changes the search query. The query is kept as typed;
// matching ignores case. No service call is made.
func (c *Controller) SetSearch(q string) {
	c.mutate(func() { c.search = q })
}

func findTask(tasks []service.Task, id int) (service.Task, bool) {
	if id == 0 {
		return service.Task{}, false
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}
