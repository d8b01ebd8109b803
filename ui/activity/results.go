package activity

import (
	"context"
	"errors"

	"go.uber.org/atomic"

	"github.com/ltp456/uwallet/ui/load"
)

const resultBufferSize = 16

// errBusy is shown when a task could not be started.
var errBusy = errors.New("wallet is busy, try again")

type result struct {
	generation uint64
	apply      func()
}

// resultQueue carries the outcome of background tasks back to the render
// goroutine. Tasks return a closure that is applied in the next Layout.
// Results of tasks spawned before the last invalidate are dropped, so work
// started before an OnPause never touches the paused activity.
type resultQueue struct {
	load       *load.Load
	generation atomic.Uint64
	results    chan result
}

func newResultQueue(l *load.Load) *resultQueue {
	return &resultQueue{
		load:    l,
		results: make(chan result, resultBufferSize),
	}
}

// spawn runs task on the executor. The closure it returns is applied on the
// render goroutine unless the queue was invalidated in the meantime.
func (q *resultQueue) spawn(name string, task func(ctx context.Context) func()) bool {
	generation := q.generation.Load()
	return q.load.Executor.Go(name, func(ctx context.Context) error {
		apply := task(ctx)
		if apply == nil {
			return nil
		}
		select {
		case q.results <- result{generation: generation, apply: apply}:
			q.load.Navigator.Invalidate()
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// invalidate drops the results of every task spawned so far.
func (q *resultQueue) invalidate() {
	q.generation.Inc()
}

// drain applies the pending results. It must be called on the render
// goroutine.
func (q *resultQueue) drain() {
	current := q.generation.Load()
	for {
		select {
		case r := <-q.results:
			if r.generation != current {
				log.Tracef("dropping stale task result (generation %d, current %d)", r.generation, current)
				continue
			}
			r.apply()
		default:
			return
		}
	}
}
