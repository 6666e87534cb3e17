package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/controller"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes bool
	in  io.Reader
}

// SetYes skips the confirmation prompt (for testing).
func (c *RmCmd) SetYes(yes bool) {
	c.yes = yes
}

// SetInput sets where the confirmation answer is read from (for testing).
func (c *RmCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "taskflow rm [--yes] <id>" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return reportTaskID(errOut, err)
	}

	ctrl := controller.New(svc,
		controller.WithConfirmer(c.confirmer(out)),
		controller.WithNotifier(controller.NotifierFunc(func(n controller.Notification) {
			if n.Level == controller.LevelSuccess && !cfg.Quiet {
				fmt.Fprintln(out, n.Message)
			}
		})),
	)

	if err := ctrl.Delete(ctx, id); err != nil {
		return reportTask(errOut, id, err)
	}
	return exitcode.Success
}

// confirmer asks on the input stream unless --yes was given.
func (c *RmCmd) confirmer(out io.Writer) controller.Confirmer {
	if c.yes {
		return controller.ConfirmerFunc(func(context.Context, string) (bool, error) {
			return true, nil
		})
	}

	in := c.in
	if in == nil {
		in = os.Stdin
	}
	return controller.ConfirmerFunc(func(ctx context.Context, prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return false, nil
			}
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	})
}
