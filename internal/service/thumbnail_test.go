package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fileshelf/fileshelf-server/internal/mocks"
	"github.com/fileshelf/fileshelf-server/internal/model"
	"github.com/fileshelf/fileshelf-server/internal/queue/memory"
	"github.com/fileshelf/fileshelf-server/internal/storage/disk"
	"github.com/fileshelf/fileshelf-server/internal/testutil"
)

func makeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnailer_Process_WritesAllSizes(t *testing.T) {
	ctx := context.Background()

	content, err := disk.NewClient(t.TempDir())
	require.NoError(t, err)

	key, err := content.Save(ctx, makeTestPNG(t, 640, 480))
	require.NoError(t, err)

	ownerID := uuid.New()
	nodeID := uuid.New()

	nodeStore := &mocks.FileNodeStore{}
	nodeStore.On("GetByIDAndOwner", mock.Anything, nodeID, ownerID).
		Return(model.FileNode{ID: nodeID, OwnerID: ownerID, Kind: model.NodeKindImage, StorageKey: key}, nil)

	q := memory.New(4)
	defer q.Close()

	th := NewThumbnailer(q, nodeStore, content, testutil.MakeNoopLogger())

	job := model.ThumbnailJob{UserID: ownerID, FileID: nodeID}
	th.Process(ctx, job)

	for _, size := range model.ThumbnailSizes {
		data, err := content.LoadVariant(ctx, key, size)
		require.NoError(t, err, "derivative of width %d", size)

		img, format, err := image.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, size, img.Bounds().Dx())
		// 640x480 scaled by width keeps a 4:3 ratio.
		assert.Equal(t, size*3/4, img.Bounds().Dy())
	}
}

func TestThumbnailer_Process_Rerun(t *testing.T) {
	ctx := context.Background()

	content, err := disk.NewClient(t.TempDir())
	require.NoError(t, err)

	key, err := content.Save(ctx, makeTestPNG(t, 800, 800))
	require.NoError(t, err)

	ownerID := uuid.New()
	nodeID := uuid.New()

	nodeStore := &mocks.FileNodeStore{}
	nodeStore.On("GetByIDAndOwner", mock.Anything, nodeID, ownerID).
		Return(model.FileNode{ID: nodeID, OwnerID: ownerID, Kind: model.NodeKindImage, StorageKey: key}, nil)

	q := memory.New(4)
	defer q.Close()

	th := NewThumbnailer(q, nodeStore, content, testutil.MakeNoopLogger())

	job := model.ThumbnailJob{UserID: ownerID, FileID: nodeID}
	th.Process(ctx, job)
	// Redelivery regenerates in place without error.
	th.Process(ctx, job)

	for _, size := range model.ThumbnailSizes {
		_, err := content.LoadVariant(ctx, key, size)
		require.NoError(t, err)
	}
}

func TestThumbnailer_Process_TerminalDrops(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	missingID := uuid.New()
	fileID := uuid.New()
	badImageID := uuid.New()

	content, err := disk.NewClient(t.TempDir())
	require.NoError(t, err)

	badKey, err := content.Save(ctx, []byte("definitely not an image"))
	require.NoError(t, err)

	nodeStore := &mocks.FileNodeStore{}
	nodeStore.On("GetByIDAndOwner", mock.Anything, missingID, ownerID).
		Return(model.FileNode{}, model.ErrNotFound)
	nodeStore.On("GetByIDAndOwner", mock.Anything, fileID, ownerID).
		Return(model.FileNode{ID: fileID, OwnerID: ownerID, Kind: model.NodeKindFile, StorageKey: "k"}, nil)
	nodeStore.On("GetByIDAndOwner", mock.Anything, badImageID, ownerID).
		Return(model.FileNode{ID: badImageID, OwnerID: ownerID, Kind: model.NodeKindImage, StorageKey: badKey}, nil)

	queue := &mocks.JobQueue{}
	queue.On("Ack", mock.Anything).Return()

	th := NewThumbnailer(queue, nodeStore, content, testutil.MakeNoopLogger())

	th.Process(ctx, model.ThumbnailJob{UserID: ownerID, FileID: missingID})
	th.Process(ctx, model.ThumbnailJob{UserID: ownerID, FileID: fileID})
	th.Process(ctx, model.ThumbnailJob{UserID: ownerID, FileID: badImageID})

	queue.AssertNumberOfCalls(t, "Ack", 3)
	queue.AssertNotCalled(t, "Requeue", mock.Anything)
}

func TestThumbnailer_Process_RetriesStorageFailures(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	nodeID := uuid.New()

	nodeStore := &mocks.FileNodeStore{}
	nodeStore.On("GetByIDAndOwner", mock.Anything, nodeID, ownerID).
		Return(model.FileNode{ID: nodeID, OwnerID: ownerID, Kind: model.NodeKindImage, StorageKey: "k"}, nil)

	content := &mocks.ContentStore{}
	content.On("Load", mock.Anything, "k").Return(nil, errors.New("disk timeout"))

	queue := &mocks.JobQueue{}
	queue.On("Requeue", model.ThumbnailJob{UserID: ownerID, FileID: nodeID}).Return(nil)
	queue.On("Ack", mock.Anything).Return()

	th := NewThumbnailer(queue, nodeStore, content, testutil.MakeNoopLogger())

	th.Process(ctx, model.ThumbnailJob{UserID: ownerID, FileID: nodeID})
	queue.AssertCalled(t, "Requeue", model.ThumbnailJob{UserID: ownerID, FileID: nodeID})

	// The final attempt acks instead of requeueing again.
	th.Process(ctx, model.ThumbnailJob{UserID: ownerID, FileID: nodeID, Attempt: maxJobAttempts - 1})
	queue.AssertNumberOfCalls(t, "Requeue", 1)
	queue.AssertNumberOfCalls(t, "Ack", 1)
}

func TestThumbnailer_Run_StopsOnQueueClose(t *testing.T) {
	q := memory.New(1)

	th := NewThumbnailer(q, &mocks.FileNodeStore{}, &mocks.ContentStore{}, testutil.MakeNoopLogger())

	done := make(chan struct{})
	go func() {
		th.Run(context.Background())
		close(done)
	}()

	q.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after queue close")
	}
}
