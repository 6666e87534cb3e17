package controller_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/controller"
	"taskflow/internal/service"
	"taskflow/internal/testutil"
)

// recorder collects notifications.
type recorder struct {
	mu   sync.Mutex
	list []controller.Notification
}

func (r *recorder) Notify(n controller.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, n)
}

func (r *recorder) last() controller.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.list) == 0 {
		return controller.Notification{}
	}
	return r.list[len(r.list)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.list)
}

func yes() controller.Confirmer {
	return controller.ConfirmerFunc(func(context.Context, string) (bool, error) { return true, nil })
}

func no() controller.Confirmer {
	return controller.ConfirmerFunc(func(context.Context, string) (bool, error) { return false, nil })
}

func setup(t *testing.T, opts ...controller.Option) (*controller.Controller, *testutil.FakeService, *recorder) {
	t.Helper()
	svc := testutil.NewFakeService()
	rec := &recorder{}
	opts = append([]controller.Option{controller.WithNotifier(rec)}, opts...)
	return controller.New(svc, opts...), svc, rec
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, _ := setup(t)
	svc.AddTask("buy milk", true)
	svc.AddTask("walk dog", false)

	require.NoError(t, ctrl.Load(ctx))

	v := ctrl.View()
	assert.Len(t, v.Tasks, 2)
	assert.Equal(t, "walk dog", v.Tasks[0].Text)
	assert.Equal(t, 2, v.Total)
	assert.Equal(t, 1, v.Completed)
	assert.False(t, v.Loading)
}

func TestLoad_FailureFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, rec := setup(t)
	svc.AddTask("buy milk", false)
	require.NoError(t, ctrl.Load(ctx))

	svc.ListTasksErr = fmt.Errorf("%w: dial tcp: refused", service.ErrTransport)
	err := ctrl.Load(ctx)
	assert.ErrorIs(t, err, service.ErrTransport)

	v := ctrl.View()
	assert.NotNil(t, v.Tasks)
	assert.Empty(t, v.Tasks)
	assert.Equal(t, controller.Notification{Level: controller.LevelError, Message: controller.MsgConnectionError}, rec.last())
}

func TestAdd_EmptyMakesNoCall(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, rec := setup(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		err := ctrl.Add(ctx, text)
		assert.ErrorIs(t, err, controller.ErrEmptyText)
	}
	assert.Equal(t, 0, svc.TotalCalls())
	assert.Equal(t, controller.MsgEnterTask, rec.last().Message)
	assert.Equal(t, controller.LevelError, rec.last().Level)
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, rec := setup(t)

	require.NoError(t, ctrl.Add(ctx, "  buy milk "))

	v := ctrl.View()
	require.Len(t, v.Tasks, 1)
	assert.Equal(t, "buy milk", v.Tasks[0].Text)
	assert.Equal(t, 1, svc.Calls("CreateTask"))
	assert.Equal(t, 1, svc.Calls("ListTasks"))
	assert.Equal(t, controller.Notification{Level: controller.LevelSuccess, Message: service.MsgCreated}, rec.last())
}

func TestAdd_Failure(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, rec := setup(t)
	svc.CreateTaskErr = errors.New("server error (500): Internal server error")

	err := ctrl.Add(ctx, "buy milk")
	require.Error(t, err)
	assert.Equal(t, 0, svc.Calls("ListTasks"))
	assert.Equal(t, "server error (500): Internal server error", rec.last().Message)
	assert.False(t, ctrl.View().Loading)
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, rec := setup(t)
	task := svc.AddTask("walk dog", false)
	require.NoError(t, ctrl.Load(ctx))

	require.NoError(t, ctrl.Toggle(ctx, task.ID))
	assert.True(t, ctrl.View().Tasks[0].Completed)
	assert.Equal(t, service.MsgCompleted, rec.last().Message)

	require.NoError(t, ctrl.Toggle(ctx, task.ID))
	assert.False(t, ctrl.View().Tasks[0].Completed)
	assert.Equal(t, service.MsgUpdated, rec.last().Message)
}

func TestToggle_WhileEditingIsNoop(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, _ := setup(t)
	task := svc.AddTask("walk dog", false)
	require.NoError(t, ctrl.Load(ctx))
	require.NoError(t, ctrl.StartEdit(task.ID))

	require.NoError(t, ctrl.Toggle(ctx, task.ID))
	assert.Equal(t, 0, svc.Calls("UpdateTask"))
	assert.False(t, ctrl.View().Tasks[0].Completed)
}

func TestToggle_UnknownID(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, rec := setup(t)

	err := ctrl.Toggle(ctx, 42)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, 0, svc.Calls("UpdateTask"))
	assert.Equal(t, controller.LevelError, rec.last().Level)
}

func TestEdit(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, rec := setup(t)
	milk := svc.AddTask("buy milk", false)
	dog := svc.AddTask("walk dog", false)
	require.NoError(t, ctrl.Load(ctx))

	t.Run("only one edit at a time", func(t *testing.T) {
		require.NoError(t, ctrl.StartEdit(milk.ID))
		require.NoError(t, ctrl.StartEdit(dog.ID))
		assert.Equal(t, dog.ID, ctrl.View().EditingID)
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, ctrl.StartEdit(99), service.ErrNotFound)
		assert.Equal(t, dog.ID, ctrl.View().EditingID)
	})

	t.Run("empty save stays in edit mode", func(t *testing.T) {
		calls := svc.TotalCalls()
		assert.ErrorIs(t, ctrl.SaveEdit(ctx, "  "), controller.ErrEmptyText)
		assert.Equal(t, calls, svc.TotalCalls())
		assert.Equal(t, dog.ID, ctrl.View().EditingID)
		assert.Equal(t, controller.MsgEnterTask, rec.last().Message)
	})

	t.Run("save", func(t *testing.T) {
		require.NoError(t, ctrl.SaveEdit(ctx, "walk the dog"))
		v := ctrl.View()
		assert.Equal(t, 0, v.EditingID)
		assert.Equal(t, "walk the dog", v.Tasks[0].Text)
		assert.Equal(t, service.MsgUpdated, rec.last().Message)
	})

	t.Run("save without edit", func(t *testing.T) {
		assert.ErrorIs(t, ctrl.SaveEdit(ctx, "x"), controller.ErrNotEditing)
	})

	t.Run("cancel makes no call", func(t *testing.T) {
		require.NoError(t, ctrl.StartEdit(milk.ID))
		calls := svc.TotalCalls()
		ctrl.CancelEdit()
		assert.Equal(t, calls, svc.TotalCalls())
		v := ctrl.View()
		assert.Equal(t, 0, v.EditingID)
		_, ok := v.Editing()
		assert.False(t, ok)
	})
}

func TestEdit_FailureKeepsEditMode(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, _ := setup(t)
	task := svc.AddTask("buy milk", false)
	require.NoError(t, ctrl.Load(ctx))
	require.NoError(t, ctrl.StartEdit(task.ID))

	svc.UpdateTaskErr = fmt.Errorf("%w: timeout", service.ErrTransport)
	assert.ErrorIs(t, ctrl.SaveEdit(ctx, "buy bread"), service.ErrTransport)

	editing, ok := ctrl.View().Editing()
	require.True(t, ok)
	assert.Equal(t, "buy milk", editing.Text)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, rec := setup(t, controller.WithConfirmer(yes()))
	task := svc.AddTask("walk dog", false)
	require.NoError(t, ctrl.Load(ctx))

	require.NoError(t, ctrl.Delete(ctx, task.ID))
	v := ctrl.View()
	assert.Empty(t, v.Tasks)
	assert.False(t, v.DeleteInProgress)
	assert.Equal(t, service.MsgDeleted, rec.last().Message)
}

func TestDelete_Declined(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, rec := setup(t, controller.WithConfirmer(no()))
	task := svc.AddTask("walk dog", false)
	require.NoError(t, ctrl.Load(ctx))
	before := rec.count()

	assert.ErrorIs(t, ctrl.Delete(ctx, task.ID), controller.ErrCancelled)
	assert.Equal(t, 0, svc.Calls("DeleteTask"))
	assert.Equal(t, 1, svc.Len())
	assert.Equal(t, before, rec.count())
	assert.False(t, ctrl.View().DeleteInProgress)
}

func TestDelete_DefaultConfirmerDeclines(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, _ := setup(t)
	task := svc.AddTask("walk dog", false)

	assert.ErrorIs(t, ctrl.Delete(ctx, task.ID), controller.ErrCancelled)
	assert.Equal(t, 0, svc.Calls("DeleteTask"))
}

func TestDelete_BusyGuard(t *testing.T) {
	ctx := context.Background()
	var (
		ctrl      *controller.Controller
		nestedErr error
		busySeen  bool
	)
	confirm := controller.ConfirmerFunc(func(ctx context.Context, _ string) (bool, error) {
		busySeen = ctrl.View().DeleteInProgress
		nestedErr = ctrl.Delete(ctx, 1)
		return true, nil
	})
	ctrl, svc, _ := setup(t, controller.WithConfirmer(confirm))
	svc.AddTask("walk dog", false)
	require.NoError(t, ctrl.Load(ctx))

	require.NoError(t, ctrl.Delete(ctx, 1))
	assert.True(t, busySeen)
	assert.ErrorIs(t, nestedErr, controller.ErrBusy)
	assert.Equal(t, 1, svc.Calls("DeleteTask"))
	assert.False(t, ctrl.View().DeleteInProgress)
}

func TestDelete_EndsEditOfDeletedTask(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, _ := setup(t, controller.WithConfirmer(yes()))
	task := svc.AddTask("walk dog", false)
	require.NoError(t, ctrl.Load(ctx))
	require.NoError(t, ctrl.StartEdit(task.ID))

	require.NoError(t, ctrl.Delete(ctx, task.ID))
	assert.Equal(t, 0, ctrl.View().EditingID)
}

func TestDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, rec := setup(t, controller.WithConfirmer(yes()))
	svc.AddTask("walk dog", false)

	assert.ErrorIs(t, ctrl.Delete(ctx, 9), service.ErrNotFound)
	assert.Equal(t, 1, svc.Len())
	assert.Equal(t, controller.LevelError, rec.last().Level)
	assert.False(t, ctrl.View().DeleteInProgress)
}

func TestFilterAndSearchAreLocal(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, _ := setup(t)
	svc.AddTask("buy milk", true)
	svc.AddTask("walk dog", false)
	require.NoError(t, ctrl.Load(ctx))
	calls := svc.TotalCalls()

	ctrl.SetFilter(controller.FilterPending)
	ctrl.SetSearch("DOG")

	v := ctrl.View()
	assert.Equal(t, calls, svc.TotalCalls())
	assert.Equal(t, controller.FilterPending, v.Filter)
	assert.Equal(t, "DOG", v.Search, "query is kept as typed")
	require.Len(t, v.Visible, 1)
	assert.Equal(t, "walk dog", v.Visible[0].Text)
	assert.Len(t, v.Tasks, 2)
}

func TestOnChange(t *testing.T) {
	ctx := context.Background()
	var views []controller.View
	ctrl, svc, _ := setup(t, controller.WithOnChange(func(v controller.View) {
		views = append(views, v)
	}))
	svc.AddTask("walk dog", false)

	require.NoError(t, ctrl.Load(ctx))
	require.NotEmpty(t, views)
	assert.True(t, views[0].Loading)
	last := views[len(views)-1]
	assert.False(t, last.Loading)
	assert.Len(t, last.Tasks, 1)

	n := len(views)
	ctrl.SetFilter(controller.FilterCompleted)
	require.Len(t, views, n+1)
	assert.Empty(t, views[n].Visible)
}

func TestView_IsSnapshot(t *testing.T) {
	ctx := context.Background()
	ctrl, svc, _ := setup(t)
	svc.AddTask("walk dog", false)
	require.NoError(t, ctrl.Load(ctx))

	v := ctrl.View()
	v.Tasks[0].Text = "changed"
	assert.Equal(t, "walk dog", ctrl.View().Tasks[0].Text)
}

func TestCancelledContextIsSilent(t *testing.T) {
	ctrl, _, rec := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ctrl.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, rec.count())
}
