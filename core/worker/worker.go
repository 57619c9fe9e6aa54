package worker

import "context"

// Worker is a module's long-running background task. Run blocks until ctx is
// cancelled or the worker fails, releasing the module's resources on the way
// out.
type Worker interface {
	Run(ctx context.Context) error
}
