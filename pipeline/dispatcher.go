package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/byte4ever/slashsum/chunk"
	"github.com/byte4ever/slashsum/digest"
)

// DefaultQueueCapacity is the per-algorithm queue length in chunks.
const DefaultQueueCapacity = 1024

var (
	// ErrWorkerFault is returned when an accumulator fails inside its
	// worker. It aborts the whole run.
	ErrWorkerFault = errors.New("digest worker fault")

	// ErrDispatcherClosed is returned by Dispatch after Close or Abort.
	ErrDispatcherClosed = errors.New("dispatcher closed")
)

// Dispatcher owns one bounded queue and one worker per accumulator.
//
// Dispatch, Close and Abort must be called from a single goroutine,
// the one driving the chunk source. Wait may be called from any
// goroutine once.
type Dispatcher struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	group  *errgroup.Group

	queues  []chan chunk.Chunk
	results []digest.Result

	closeOnce sync.Once
	closed    bool
}

// NewDispatcher starts one worker per accumulator, each fed by a
// queue holding up to capacity chunks. Accumulators are owned by the
// dispatcher from here on.
func NewDispatcher(
	ctx context.Context,
	accs []digest.Accumulator,
	capacity int,
) (*Dispatcher, error) {
	const errCtx = "creating dispatcher"

	if capacity < 1 {
		return nil, fmt.Errorf(
			"%s: queue capacity must be at least 1, got %d",
			errCtx, capacity,
		)
	}

	if len(accs) == 0 {
		return nil, fmt.Errorf("%s: no accumulators", errCtx)
	}

	ctx, cancel := context.WithCancelCause(ctx)
	group, gctx := errgroup.WithContext(ctx)

	d := &Dispatcher{
		ctx:     gctx,
		cancel:  cancel,
		group:   group,
		queues:  make([]chan chunk.Chunk, len(accs)),
		results: make([]digest.Result, len(accs)),
	}

	for i, acc := range accs {
		queue := make(chan chunk.Chunk, capacity)
		d.queues[i] = queue

		group.Go(func() error {
			return d.work(i, acc, queue)
		})
	}

	return d, nil
}

// Dispatch hands ch to every worker in configured order, blocking
// while a queue is full. It returns the cause if the run was aborted
// or a worker failed in the meantime.
func (d *Dispatcher) Dispatch(ch chunk.Chunk) error {
	if d.closed {
		return ErrDispatcherClosed
	}

	if err := d.ctx.Err(); err != nil {
		return context.Cause(d.ctx)
	}

	for _, queue := range d.queues {
		select {
		case queue <- ch:
		case <-d.ctx.Done():
			return context.Cause(d.ctx)
		}
	}

	return nil
}

// Close signals end of stream. Workers finish the chunks already
// queued, then finalize. Close is idempotent.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.closed = true

		for _, queue := range d.queues {
			close(queue)
		}
	})
}

// Abort stops every worker without finalizing. Wait then returns
// cause (or an earlier worker error).
func (d *Dispatcher) Abort(cause error) {
	d.cancel(cause)
	d.Close()
}

// Wait blocks until every worker returned. On success the results
// are in accumulator order.
func (d *Dispatcher) Wait() ([]digest.Result, error) {
	err := d.group.Wait()
	d.cancel(nil)

	if err != nil {
		return nil, err
	}

	return d.results, nil
}

// work drains queue into acc until the queue is closed and empty,
// then stores the digest in slot i.
func (d *Dispatcher) work(
	i int,
	acc digest.Accumulator,
	queue <-chan chunk.Chunk,
) (retErr error) {
	var alg digest.Algorithm

	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf(
				"%w: worker %d (%s): %v", ErrWorkerFault, i, alg, r,
			)
		}
	}()

	alg = acc.Algorithm()

	for {
		select {
		case <-d.ctx.Done():
			return context.Cause(d.ctx)

		case ch, ok := <-queue:
			if !ok {
				// Abort cancels before closing, so a closed queue
				// seen here after an abort yields no digest.
				if d.ctx.Err() != nil {
					return context.Cause(d.ctx)
				}

				sum, err := acc.Finalize()
				if err != nil {
					return fmt.Errorf(
						"%w: %s: %w", ErrWorkerFault, alg, err,
					)
				}

				d.results[i] = digest.Result{Algorithm: alg, Value: sum}

				return nil
			}

			acc.Ingest(ch)
		}
	}
}
