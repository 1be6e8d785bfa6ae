package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/gameday-threads/internal/logging"
	"github.com/preston-bernstein/gameday-threads/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run both cycles on their intervals with an HTTP inspection API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, stop, opts)
		},
	}
}

func runServe(ctx context.Context, stop context.CancelFunc, opts *RootOptions) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	srv, err := server.New(ctx, rt.cfg, rt.logger, serverOptions(opts))
	if err != nil {
		logging.Error(rt.logger, "startup failed", err)
		return err
	}
	srv.Run(ctx, stop)
	return nil
}
