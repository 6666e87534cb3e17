package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"taskflow/internal/controller"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
)

// report prints err to errOut and returns the matching exit code.
func report(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, controller.ErrEmptyText):
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	case errors.Is(err, controller.ErrCancelled), errors.Is(err, controller.ErrBusy):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: interrupted")
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// reportTask is like report but names the task on not-found errors.
func reportTask(errOut io.Writer, id int, err error) int {
	if errors.Is(err, service.ErrNotFound) {
		fmt.Fprintf(errOut, "error: task not found: %d\n", id)
		return exitcode.UserError
	}
	return report(errOut, err)
}

// reportTaskID prints a task id parse error.
func reportTaskID(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}
