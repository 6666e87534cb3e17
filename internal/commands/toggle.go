package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/service"
)

func init() {
	Register(&ToggleCmd{})
	Register(&ShowCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string   { return "Flip a task between pending and completed" }
func (c *ToggleCmd) Usage() string      { return "taskflow toggle <id>" }
func (c *ToggleCmd) NeedsBackend() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return reportTaskID(errOut, err)
	}

	task, err := svc.GetTask(ctx, id)
	if err != nil {
		return reportTask(errOut, id, err)
	}

	_, msg, err := svc.UpdateTask(ctx, id, service.SetCompleted(!task.Completed))
	if err != nil {
		return reportTask(errOut, id, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, msg)
	}
	return exitcode.Success
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return nil }
func (c *ShowCmd) Synopsis() string   { return "Print one task" }
func (c *ShowCmd) Usage() string      { return "taskflow show <id>" }
func (c *ShowCmd) NeedsBackend() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return reportTaskID(errOut, err)
	}

	task, err := svc.GetTask(ctx, id)
	if err != nil {
		return reportTask(errOut, id, err)
	}

	output.Task(out, task)
	return exitcode.Success
}
