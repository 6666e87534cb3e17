package httpapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/backend/httpapi"
	"taskflow/internal/server"
	"taskflow/internal/service"
	"taskflow/internal/testutil"
)

// newStack starts a real task server over a FakeService and returns a client for it.
func newStack(t *testing.T) (*httpapi.Client, *testutil.FakeService) {
	t.Helper()

	svc := testutil.NewFakeService()
	ts := httptest.NewServer(server.New(svc).Handler())
	t.Cleanup(ts.Close)

	client, err := httpapi.New(ts.URL, httpapi.WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	return client, svc
}

func TestNew_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "localhost", "::bad"} {
		_, err := httpapi.New(u)
		assert.Error(t, err, u)
	}
}

func TestClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client, svc := newStack(t)

	tasks, err := client.ListTasks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	milk, msg, err := client.CreateTask(ctx, "buy milk")
	require.NoError(t, err)
	assert.Equal(t, 1, milk.ID)
	assert.Equal(t, service.MsgCreated, msg)

	dog, _, err := client.CreateTask(ctx, "walk dog")
	require.NoError(t, err)

	got, err := client.GetTask(ctx, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got.Text)
	assert.True(t, got.CreatedAt.Equal(milk.CreatedAt))

	updated, msg, err := client.UpdateTask(ctx, milk.ID, service.SetCompleted(true))
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, service.MsgCompleted, msg)

	stats, err := client.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.Stats{Total: 2, Completed: 1, Pending: 1, CompletionRate: 50}, stats)

	msg, err = client.DeleteTask(ctx, dog.ID)
	require.NoError(t, err)
	assert.Equal(t, service.MsgDeleted, msg)
	assert.Equal(t, 1, svc.Len())

	tasks, err = client.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, milk.ID, tasks[0].ID)
}

func TestClient_ErrorMapping(t *testing.T) {
	ctx := context.Background()
	client, _ := newStack(t)

	_, err := client.GetTask(ctx, 7)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = client.DeleteTask(ctx, 7)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, _, err = client.UpdateTask(ctx, 7, service.SetText("x"))
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, _, err = client.CreateTask(ctx, "   ")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestClient_ServerError(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewFakeService()
	svc.StatsErr = errors.New("boom")
	ts := httptest.NewServer(server.New(svc).Handler())
	defer ts.Close()

	client, err := httpapi.New(ts.URL)
	require.NoError(t, err)

	_, err = client.Stats(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.NotErrorIs(t, err, service.ErrTransport)
}

func TestClient_UnsuccessfulEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"message":"nope"}`))
	}))
	defer ts.Close()

	client, err := httpapi.New(ts.URL)
	require.NoError(t, err)

	_, err = client.ListTasks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestClient_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client, err := httpapi.New(url)
	require.NoError(t, err)

	_, err = client.ListTasks(context.Background())
	assert.ErrorIs(t, err, service.ErrTransport)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	client, err := httpapi.New(ts.URL, httpapi.WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	_, err = client.ListTasks(context.Background())
	assert.ErrorIs(t, err, service.ErrTransport)
}

func TestClient_CallerCancellation(t *testing.T) {
	client, _ := newStack(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListTasks(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, service.ErrTransport)
}
