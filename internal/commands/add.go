package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
)

func init() {
	Register(&AddCmd{})
	Register(&EditCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "taskflow add <text...>" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}

	task, msg, err := svc.CreateTask(ctx, text)
	if err != nil {
		return report(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "%s (id %d)\n", msg, task.ID)
	}
	return exitcode.Success
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return nil }
func (c *EditCmd) Synopsis() string   { return "Replace the text of a task" }
func (c *EditCmd) Usage() string      { return "taskflow edit <id> <text...>" }
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return reportTaskID(errOut, err)
	}

	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}

	_, msg, err := svc.UpdateTask(ctx, id, service.SetText(text))
	if err != nil {
		return reportTask(errOut, id, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, msg)
	}
	return exitcode.Success
}
