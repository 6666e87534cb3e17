package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/server"
	"taskflow/internal/service"
	"taskflow/internal/store"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command. It hosts the task API over an
// in-memory store.
type ServeCmd struct {
	addr    string
	seed    bool
	latency time.Duration
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return []string{"server"} }
func (c *ServeCmd) Synopsis() string   { return "Run the task API" }
func (c *ServeCmd) Usage() string      { return "taskflow serve [--addr <addr>] [--seed] [--latency <d>]" }
func (c *ServeCmd) NeedsBackend() bool { return false }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "")
	fs.BoolVar(&c.seed, "seed", false, "")
	fs.DurationVar(&c.latency, "latency", 0, "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.latency < 0 {
		fmt.Fprintln(errOut, "error: latency must not be negative")
		return exitcode.UserError
	}

	addr := c.addr
	if addr == "" {
		addr = cfg.ListenAddr
	}

	var storeOpts []store.Option
	if c.seed {
		storeOpts = append(storeOpts, store.WithWelcomeTasks())
	}

	logger := cfg.Logger(errOut)
	opts := []server.Option{server.WithLogger(logger), server.WithLatency(c.latency)}
	if cfg.Debug {
		opts = append(opts, server.WithAccessLog(errOut))
	}
	srv := server.New(store.New(storeOpts...), opts...)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- srv.Listen(addr)
	}()

	if !cfg.Quiet {
		fmt.Fprintf(out, "listening on %s\n", addr)
	}

	wait := gfshutdown.GracefulShutdown(ctx, server.ShutdownTimeout, map[string]gfshutdown.Operation{
		"task-api": func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	select {
	case err := <-listenErr:
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.ConfigError
		}
		// Listen only returns cleanly once a shutdown is underway
		return waitCode(<-wait)
	case code := <-wait:
		return waitCode(code)
	}
}

// waitCode maps the graceful shutdown result to an exit code.
func waitCode(code int) int {
	if code != 0 {
		return exitcode.BackendError
	}
	return exitcode.Success
}
