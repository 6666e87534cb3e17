package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskflow help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskflow                                       List all tasks
  taskflow serve [common flags] [--addr <addr>] [--seed] [--latency <d>]
  taskflow list [common flags] [--filter all|completed|pending] [--search <q>] [--format text|html|json]
  taskflow show [common flags] <id>
  taskflow add [common flags] <text...>
  taskflow create [common flags] <text...>
  taskflow toggle [common flags] <id>
  taskflow done [common flags] <id>
  taskflow edit [common flags] <id> <text...>
  taskflow rm [common flags] [--yes] <id>
  taskflow delete [common flags] [--yes] <id>
  taskflow stats [common flags]
  taskflow ui [common flags]
  taskflow help
  taskflow version

Common flags:
  --config <dir>   Override config directory
  --server <url>   Task API base URL (default http://localhost:5004)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
