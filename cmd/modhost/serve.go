package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/danmuck/modhost/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve module assets over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, reg, err := opts.registry()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			// fail fast when the application package cannot be loaded
			if _, err := reg.Application(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.Appear(cfg, reg).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
