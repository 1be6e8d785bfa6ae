package server

import (
	"context"

	"github.com/preston-bernstein/gameday-threads/internal/poller"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Name() string
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// cycleJob adapts a cycle's Run to a poller job; the summary is already logged by the cycle.
func cycleJob[S any](run func(context.Context) (S, error)) poller.Job {
	return func(ctx context.Context) error {
		_, err := run(ctx)
		return err
	}
}
