package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/controller"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/service"
)

// List output formats.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatJSON = "json"
)

func init() {
	Register(&ListCmd{})
	Register(&StatsCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	filter string
	search string
	format string
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks, newest first" }
func (c *ListCmd) Usage() string      { return "taskflow list [--filter all|completed|pending] [--search <q>] [--format text|html|json]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
	fs.StringVar(&c.format, "format", FormatText, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filter, err := controller.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	format := c.format
	if format == "" {
		format = FormatText
	}
	if format != FormatText && format != FormatHTML && format != FormatJSON {
		fmt.Fprintf(errOut, "error: invalid format: %s\n", format)
		return exitcode.UserError
	}

	ctrl := controller.New(svc)
	if err := ctrl.Load(ctx); err != nil {
		return report(errOut, err)
	}
	ctrl.SetFilter(filter)
	ctrl.SetSearch(c.search)
	v := ctrl.View()

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v.Visible); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	case FormatHTML:
		if err := output.HTML(out, output.NewListView(v)); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	default:
		// Quiet mode suppresses the empty listing
		if len(v.Visible) == 0 && cfg.Quiet {
			return exitcode.Success
		}
		output.Text(out, output.NewListView(v))
	}
	return exitcode.Success
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string       { return "stats" }
func (c *StatsCmd) Aliases() []string  { return nil }
func (c *StatsCmd) Synopsis() string   { return "Print task counts and completion rate" }
func (c *StatsCmd) Usage() string      { return "taskflow stats" }
func (c *StatsCmd) NeedsBackend() bool { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	stats, err := svc.Stats(ctx)
	if err != nil {
		return report(errOut, err)
	}
	output.Stats(out, stats)
	return exitcode.Success
}
