// Package dispatch runs jobs on worker goroutines, one job at a time per
// worker, routing keyed jobs to a fixed worker.
package dispatch

import (
	"context"
	"errors"
	"sync"

	"github.com/cespare/xxhash/v2"
)

var ErrClosed = errors.New("dispatch: queue closed")

// Job runs on a worker. ctx is the queue's context and ends on Close.
type Job func(ctx context.Context)

// Queue serializes jobs that share a key.
type Queue struct {
	ctx    context.Context
	cancel context.CancelFunc
	chs    []chan Job
	wg     sync.WaitGroup
}

// NewSingleQueue runs every job on one goroutine.
func NewSingleQueue(ctx context.Context, bufferSize int) *Queue {
	return NewPartitionedQueue(ctx, 1, bufferSize)
}

// NewPartitionedQueue runs numWorkers goroutines. Jobs with equal keys
// always land on the same worker.
func NewPartitionedQueue(ctx context.Context, numWorkers, bufferSize int) *Queue {
	if numWorkers < 1 {
		panic("dispatch: number of workers cannot be 0")
	}
	ctx, cancel := context.WithCancel(ctx)
	q := &Queue{
		ctx:    ctx,
		cancel: cancel,
		chs:    make([]chan Job, numWorkers),
	}

	ready := sync.WaitGroup{}
	for i := range q.chs {
		ch := make(chan Job, bufferSize)
		q.chs[i] = ch
		ready.Add(1)
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			ready.Done()
			for {
				select {
				case job := <-ch:
					job(ctx)
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	ready.Wait()
	return q
}

// Workers reports the partition count.
func (q *Queue) Workers() int {
	return len(q.chs)
}

// Partition is the worker index key routes to.
func (q *Queue) Partition(key string) int {
	if len(q.chs) == 1 {
		return 0
	}
	return int(xxhash.Sum64String(key) % uint64(len(q.chs)))
}

// Submit enqueues job on the worker owning key. It fails when the queue is
// closed or ctx ends before the job is accepted.
func (q *Queue) Submit(ctx context.Context, key string, job Job) error {
	if q.ctx.Err() != nil {
		return ErrClosed
	}
	select {
	case q.chs[q.Partition(key)] <- job:
		return nil
	case <-q.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the queue starts shutting down.
func (q *Queue) Done() <-chan struct{} {
	return q.ctx.Done()
}

// Close stops the workers and waits for the running jobs. Queued jobs that
// have not started are dropped.
func (q *Queue) Close() {
	q.cancel()
	q.wg.Wait()
}

// Result carries a job's return values back to the submitter.
type Result[R any] struct {
	Value R
	Err   error
}

// Call runs fn on the worker owning key and waits for its result.
func Call[R any](ctx context.Context, q *Queue, key string, fn func(context.Context) (R, error)) (R, error) {
	resumeCh := make(chan Result[R], 1)
	err := q.Submit(ctx, key, func(ctx context.Context) {
		v, err := fn(ctx)
		resumeCh <- Result[R]{Value: v, Err: err}
	})

	var zero R
	if err != nil {
		return zero, err
	}
	select {
	case res := <-resumeCh:
		return res.Value, res.Err
	case <-q.Done():
		// the job may have finished just before shutdown
		select {
		case res := <-resumeCh:
			return res.Value, res.Err
		default:
			return zero, ErrClosed
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
