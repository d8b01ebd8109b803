package app

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxTasks bounds the number of background tasks running at once.
const DefaultMaxTasks = 64

// Executor runs background work off the render goroutine. Tasks share a
// context that is canceled by Shutdown. Spawning never blocks: when the
// task limit is reached the task is rejected.
type Executor struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
}

// NewExecutor returns an executor whose tasks are canceled when ctx is done
// or Shutdown is called. maxTasks <= 0 means DefaultMaxTasks.
func NewExecutor(ctx context.Context, maxTasks int) *Executor {
	if maxTasks <= 0 {
		maxTasks = DefaultMaxTasks
	}
	ctx, cancel := context.WithCancel(ctx)
	e := &Executor{
		ctx:    ctx,
		cancel: cancel,
	}
	e.group.SetLimit(maxTasks)
	return e
}

// Context returns the context passed to every task.
func (e *Executor) Context() context.Context {
	return e.ctx
}

// Go starts task in a new goroutine and reports whether it was started.
// Errors returned by a task are logged, cancellation errors excepted; they
// never stop other tasks.
func (e *Executor) Go(name string, task func(ctx context.Context) error) bool {
	if e.ctx.Err() != nil {
		log.Debugf("executor is shut down, dropping task %s", name)
		return false
	}

	started := e.group.TryGo(func() error {
		err := task(e.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("background task %s failed: %v", name, err)
		}
		return nil
	})
	if !started {
		log.Warnf("too many background tasks, dropping task %s", name)
	}
	return started
}

// Shutdown cancels all tasks and waits for them to return.
func (e *Executor) Shutdown() {
	e.cancel()
	_ = e.group.Wait()
}
