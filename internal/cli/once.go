package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/gameday-threads/internal/app/discovery"
	"github.com/preston-bernstein/gameday-threads/internal/app/reconcile"
	"github.com/preston-bernstein/gameday-threads/internal/logging"
	"github.com/preston-bernstein/gameday-threads/internal/server"
)

// NewDiscoverCommand creates the discover command.
func NewDiscoverCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Run one discovery pass",
		Long: `Fetch today's scoreboards and start tracking the followed team's upcoming games.

Exits 0 once the pass has run, even when some games could not be stored; the closing
"cycle complete" log record reports what happened.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), opts, discovery.JobName, func(ctx context.Context, c *server.Components) error {
				_, err := c.Discovery().Run(ctx)
				return err
			})
		},
	}
}

// NewReconcileCommand creates the reconcile command.
func NewReconcileCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Run one reconciliation pass",
		Long: `Refresh every relevant tracked game from the feed and post, lock or retire its threads.

Exits 0 once the pass has run, even when some games failed; the closing "cycle complete"
log record reports what happened.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), opts, reconcile.JobName, func(ctx context.Context, c *server.Components) error {
				_, err := c.Reconcile().Run(ctx)
				return err
			})
		},
	}
}

// runOnce builds the components, runs one pass and flushes telemetry. Only setup failures
// are returned; an aborted pass is logged.
func runOnce(ctx context.Context, opts *RootOptions, job string, pass func(context.Context, *server.Components) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	comps, err := server.Build(ctx, rt.cfg, rt.logger, serverOptions(opts))
	if err != nil {
		logging.Error(rt.logger, "startup failed", err, logging.FieldJob, job)
		return err
	}
	defer flush(rt.logger, comps)

	if err := pass(ctx, comps); err != nil {
		logging.Error(rt.logger, "cycle aborted", err, logging.FieldJob, job)
	}
	return nil
}
