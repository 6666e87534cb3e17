// Package main is the entry point for the taskflow CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskflow/internal/backend/httpapi"
	"taskflow/internal/cli"
	"taskflow/internal/commands"
	"taskflow/internal/config"
	"taskflow/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Client commands talk to the task API over HTTP
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return httpapi.New(cfg.ServerURL, httpapi.WithLogger(cfg.Logger(os.Stderr)))
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
