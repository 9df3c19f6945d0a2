package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/stacksync/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := int(cmd.Int("port")); port > 0 {
		cfg.Port = port
	}

	// a nil *RunRepository must not reach the handler as a non-nil interface
	var store server.RunStore
	if r.store != nil {
		store = r.store
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.writePlain("Serving operations on http://%s (Ctrl+C to stop)\n", cfg.Addr())
	return server.New(cfg, r.dispatcher(true), store, r.logger).Serve(ctx)
}
