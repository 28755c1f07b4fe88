package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/fileshelf/fileshelf-server/internal/logger"
	"github.com/fileshelf/fileshelf-server/internal/model"
)

// maxJobAttempts bounds redelivery of a job that keeps failing on
// storage reads.
const maxJobAttempts = 3

// Thumbnailer consumes thumbnail jobs and writes resized derivatives of
// image nodes back to the content store. Regenerating an existing
// derivative overwrites it, so redelivered jobs are harmless.
type Thumbnailer struct {
	queue     model.JobQueue
	nodeStore model.FileNodeStore
	content   model.ContentStore
	logger    *logger.Logger
}

func NewThumbnailer(
	queue model.JobQueue,
	nodeStore model.FileNodeStore,
	content model.ContentStore,
	logger *logger.Logger,
) *Thumbnailer {
	return &Thumbnailer{
		queue:     queue,
		nodeStore: nodeStore,
		content:   content,
		logger:    logger,
	}
}

// Run consumes jobs until the queue closes or ctx is cancelled.
func (t *Thumbnailer) Run(ctx context.Context) {
	for {
		job, err := t.queue.Dequeue(ctx)
		if err != nil {
			return
		}
		t.Process(ctx, job)
	}
}

// Process handles a single job. Terminal conditions (node gone, not an
// image, undecodable bytes) ack and drop the job; storage-read failures
// requeue it up to maxJobAttempts.
func (t *Thumbnailer) Process(ctx context.Context, job model.ThumbnailJob) {
	node, err := t.nodeStore.GetByIDAndOwner(ctx, job.FileID, job.UserID)
	if errors.Is(err, model.ErrNotFound) {
		t.drop(job, "node not found")
		return
	}
	if err != nil {
		t.retry(job, err)
		return
	}

	if node.Kind != model.NodeKindImage {
		t.drop(job, "node is not an image")
		return
	}
	if node.StorageKey == "" {
		t.drop(job, "node has no storage key")
		return
	}

	data, err := t.content.Load(ctx, node.StorageKey)
	if err != nil {
		t.retry(job, err)
		return
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.drop(job, "content is not a decodable image")
		return
	}

	// Each size is generated independently; one failure does not stop
	// the others.
	for _, size := range model.ThumbnailSizes {
		encoded, err := encodeResized(src, format, size)
		if err != nil {
			t.logger.Error("Thumbnailer: failed to render derivative",
				"file_id", job.FileID,
				"size", size,
				"error", err.Error())
			continue
		}

		if err := t.content.SaveVariant(ctx, node.StorageKey, size, encoded); err != nil {
			t.logger.Error("Thumbnailer: failed to store derivative",
				"file_id", job.FileID,
				"size", size,
				"error", err.Error())
			continue
		}
	}

	t.queue.Ack(job)
	t.logger.Info("Thumbnailer: job processed", "file_id", job.FileID)
}

func (t *Thumbnailer) drop(job model.ThumbnailJob, reason string) {
	t.logger.Error("Thumbnailer: dropping job",
		"file_id", job.FileID,
		"reason", reason)
	t.queue.Ack(job)
}

func (t *Thumbnailer) retry(job model.ThumbnailJob, err error) {
	if job.Attempt+1 >= maxJobAttempts {
		t.logger.Error("Thumbnailer: giving up on job",
			"file_id", job.FileID,
			"attempts", job.Attempt+1,
			"error", err.Error())
		t.queue.Ack(job)
		return
	}

	t.logger.Warn("Thumbnailer: requeueing job",
		"file_id", job.FileID,
		"attempt", job.Attempt,
		"error", err.Error())
	if qErr := t.queue.Requeue(job); qErr != nil {
		t.logger.Error("Thumbnailer: failed to requeue job",
			"file_id", job.FileID,
			"error", qErr.Error())
	}
}

// resizeToWidth scales src to the given width, preserving aspect ratio.
func resizeToWidth(src image.Image, width int) image.Image {
	bounds := src.Bounds()
	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

// encodeResized renders src at the given width in the same format it was
// decoded from. Unknown formats fall back to PNG.
func encodeResized(src image.Image, format string, width int) ([]byte, error) {
	resized := resizeToWidth(src, width)

	var buf bytes.Buffer
	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, resized, nil)
	case "gif":
		err = gif.Encode(&buf, resized, nil)
	default:
		err = png.Encode(&buf, resized)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s derivative: %w", format, err)
	}

	return buf.Bytes(), nil
}
