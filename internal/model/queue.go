package model

import (
	"context"

	"github.com/google/uuid"
)

// ThumbnailJob is the unit of work carried from the upload path to the
// thumbnail workers. Attempt counts deliveries of the same job.
type ThumbnailJob struct {
	UserID  uuid.UUID
	FileID  uuid.UUID
	Attempt int
}

// JobQueue is an at-least-once channel of thumbnail jobs. A dequeued job
// stays tracked until it is acked; a worker that gives up on a delivery
// requeues it for another attempt. Dequeue blocks until a job arrives,
// the queue closes, or ctx is done.
type JobQueue interface {
	Enqueue(ctx context.Context, job ThumbnailJob) error
	Dequeue(ctx context.Context) (ThumbnailJob, error)
	Ack(job ThumbnailJob)
	Requeue(job ThumbnailJob) error
}
