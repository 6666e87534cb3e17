package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"taskflow/internal/controller"
)

// confirmRequest is a pending yes/no question from the controller.
type confirmRequest struct {
	prompt string
	answer chan bool
}

type (
	confirmMsg confirmRequest
	noticeMsg  controller.Notification
	changedMsg struct{}
)

// bridge carries controller callbacks, which run on command goroutines,
// into the event loop as messages.
type bridge struct {
	ctx      context.Context
	confirms chan confirmRequest
	notices  chan controller.Notification
	changes  chan struct{}
}

var (
	_ controller.Notifier  = (*bridge)(nil)
	_ controller.Confirmer = (*bridge)(nil)
)

func newBridge(ctx context.Context) *bridge {
	return &bridge{
		ctx:      ctx,
		confirms: make(chan confirmRequest),
		notices:  make(chan controller.Notification, 16),
		changes:  make(chan struct{}, 1),
	}
}

// Notify queues n for display. Notifications beyond the buffer are dropped.
func (b *bridge) Notify(n controller.Notification) {
	select {
	case b.notices <- n:
	default:
	}
}

// Confirm blocks until the user answers in the confirmation modal.
func (b *bridge) Confirm(ctx context.Context, prompt string) (bool, error) {
	req := confirmRequest{prompt: prompt, answer: make(chan bool, 1)}
	select {
	case b.confirms <- req:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	select {
	case ok := <-req.answer:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// changed coalesces state changes; one pending signal is enough to re-render.
func (b *bridge) changed(controller.View) {
	select {
	case b.changes <- struct{}{}:
	default:
	}
}

func (b *bridge) waitConfirm() tea.Cmd {
	return func() tea.Msg {
		select {
		case req := <-b.confirms:
			return confirmMsg(req)
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *bridge) waitNotice() tea.Cmd {
	return func() tea.Msg {
		select {
		case n := <-b.notices:
			return noticeMsg(n)
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *bridge) waitChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.changes:
			return changedMsg{}
		case <-b.ctx.Done():
			return nil
		}
	}
}
