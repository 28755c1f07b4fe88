// Package memory implements the thumbnail job queue in process. Jobs sit
// in a buffered channel; a dequeued job stays tracked until it is acked,
// so a worker that gives up on a delivery can requeue it for another
// attempt without losing it.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/fileshelf/fileshelf-server/internal/model"
)

var (
	// ErrQueueFull is returned when the queue buffer has no room. The
	// upload path treats this as a non-fatal warning.
	ErrQueueFull = errors.New("job queue is full")
	// ErrQueueClosed is returned once the queue has been closed and
	// drained.
	ErrQueueClosed = errors.New("job queue is closed")
)

var _ model.JobQueue = (*Queue)(nil)

// Queue is an in-process at-least-once job queue.
type Queue struct {
	jobs chan model.ThumbnailJob

	mu       sync.Mutex
	inflight map[model.ThumbnailJob]struct{}
	closed   bool
}

// New creates a queue buffering up to size jobs.
func New(size int) *Queue {
	return &Queue{
		jobs:     make(chan model.ThumbnailJob, size),
		inflight: make(map[model.ThumbnailJob]struct{}),
	}
}

// Enqueue adds a job without blocking the caller. It fails fast when the
// buffer is full or the queue is closed.
func (q *Queue) Enqueue(ctx context.Context, job model.ThumbnailJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Dequeue blocks until a job is available, the queue closes and drains,
// or ctx is done. The returned job is tracked until Ack or Requeue.
func (q *Queue) Dequeue(ctx context.Context) (model.ThumbnailJob, error) {
	select {
	case job, ok := <-q.jobs:
		if !ok {
			return model.ThumbnailJob{}, ErrQueueClosed
		}
		q.mu.Lock()
		q.inflight[job] = struct{}{}
		q.mu.Unlock()
		return job, nil
	case <-ctx.Done():
		return model.ThumbnailJob{}, ctx.Err()
	}
}

// Ack marks a delivered job as done.
func (q *Queue) Ack(job model.ThumbnailJob) {
	q.mu.Lock()
	delete(q.inflight, job)
	q.mu.Unlock()
}

// Requeue returns a delivered job to the queue with its attempt counter
// bumped.
func (q *Queue) Requeue(job model.ThumbnailJob) error {
	q.mu.Lock()
	delete(q.inflight, job)
	q.mu.Unlock()

	job.Attempt++
	return q.Enqueue(context.Background(), job)
}

// Inflight reports the number of delivered, unacked jobs.
func (q *Queue) Inflight() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.inflight)
}

// Close stops accepting jobs. Workers keep draining buffered jobs and
// then see ErrQueueClosed.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.jobs)
}
