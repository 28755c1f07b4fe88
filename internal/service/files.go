package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fileshelf/fileshelf-server/internal/logger"
	"github.com/fileshelf/fileshelf-server/internal/model"
)

// Files owns file-node metadata: hierarchy validation, visibility rules
// and paginated queries, plus the hand-off of image uploads to the
// thumbnail queue.
type Files struct {
	nodeStore model.FileNodeStore
	content   model.ContentStore
	queue     model.JobQueue
	logger    *logger.Logger
}

func NewFiles(
	nodeStore model.FileNodeStore,
	content model.ContentStore,
	queue model.JobQueue,
	logger *logger.Logger,
) *Files {
	return &Files{
		nodeStore: nodeStore,
		content:   content,
		queue:     queue,
		logger:    logger,
	}
}

// Create validates and persists a new node. Content is written to the
// content store before the metadata that references it, so a stored node
// never points at missing bytes. A queue failure after the node is
// persisted does not fail the creation.
func (s *Files) Create(ctx context.Context, params model.CreateNodeParams) (model.FileNode, error) {
	if params.Name == "" {
		return model.FileNode{}, model.NewValidationError("name")
	}
	if !params.Kind.Valid() {
		return model.FileNode{}, model.NewValidationError("type")
	}
	if params.Kind.RequiresContent() && len(params.Data) == 0 {
		return model.FileNode{}, model.NewValidationError("data")
	}

	if parentID, ok := params.Parent.NodeID(); ok {
		parent, err := s.nodeStore.GetByID(ctx, parentID)
		if errors.Is(err, model.ErrNotFound) {
			return model.FileNode{}, model.ErrParentNotFound
		}
		if err != nil {
			return model.FileNode{}, fmt.Errorf("failed to get parent node: %w", err)
		}
		if parent.Kind != model.NodeKindFolder {
			return model.FileNode{}, model.ErrParentNotFolder
		}
	}

	now := time.Now()
	node := model.FileNode{
		OwnerID:   params.OwnerID,
		Name:      params.Name,
		Kind:      params.Kind,
		Public:    params.Public,
		Parent:    params.Parent,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if params.Kind.RequiresContent() {
		key, err := s.content.Save(ctx, params.Data)
		if err != nil {
			return model.FileNode{}, fmt.Errorf("failed to store content: %w", err)
		}
		node.StorageKey = key
	}

	created, err := s.nodeStore.Create(ctx, node)
	if err != nil {
		return model.FileNode{}, fmt.Errorf("failed to create node: %w", err)
	}

	if created.Kind == model.NodeKindImage {
		job := model.ThumbnailJob{UserID: created.OwnerID, FileID: created.ID}
		if err := s.queue.Enqueue(ctx, job); err != nil {
			// Derivatives are best-effort relative to upload success.
			s.logger.Warn("Files service: failed to enqueue thumbnail job",
				"file_id", created.ID,
				"error", err.Error())
		}
	}

	s.logger.Info("Files service: node created",
		"node_id", created.ID,
		"kind", string(created.Kind))

	return created, nil
}

// Get returns the node with the given id owned by ownerID.
func (s *Files) Get(ctx context.Context, ownerID, id uuid.UUID) (model.FileNode, error) {
	node, err := s.nodeStore.GetByIDAndOwner(ctx, id, ownerID)
	if errors.Is(err, model.ErrNotFound) {
		return model.FileNode{}, model.ErrNotFound
	}
	if err != nil {
		return model.FileNode{}, fmt.Errorf("failed to get node: %w", err)
	}

	return node, nil
}

// GetPublicOrOwned returns the node if it is public or if requester owns
// it. Absence and denial are indistinguishable. requester may be
// uuid.Nil for anonymous access.
func (s *Files) GetPublicOrOwned(ctx context.Context, id, requester uuid.UUID) (model.FileNode, error) {
	node, err := s.nodeStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.FileNode{}, model.ErrNotFound
	}
	if err != nil {
		return model.FileNode{}, fmt.Errorf("failed to get node: %w", err)
	}

	if !node.Public && node.OwnerID != requester {
		return model.FileNode{}, model.ErrNotFound
	}

	return node, nil
}

// List returns the page-th window of ownerID's nodes under parent in
// insertion order. Pages past the end yield an empty slice.
func (s *Files) List(ctx context.Context, ownerID uuid.UUID, parent model.ParentRef, page int) ([]model.FileNode, error) {
	if page < 0 {
		page = 0
	}

	nodes, err := s.nodeStore.ListByParent(ctx, ownerID, parent, page*model.ListPageSize, model.ListPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	return nodes, nil
}

// SetVisibility flips the public flag on a node owned by ownerID.
func (s *Files) SetVisibility(ctx context.Context, ownerID, id uuid.UUID, public bool) (model.FileNode, error) {
	node, err := s.nodeStore.SetPublic(ctx, id, ownerID, public)
	if errors.Is(err, model.ErrNotFound) {
		return model.FileNode{}, model.ErrNotFound
	}
	if err != nil {
		return model.FileNode{}, fmt.Errorf("failed to set node visibility: %w", err)
	}

	return node, nil
}

// Data returns a readable node together with its content, or with the
// derivative of the requested size when size is non-zero.
func (s *Files) Data(ctx context.Context, id, requester uuid.UUID, size int) (model.FileNode, []byte, error) {
	node, err := s.GetPublicOrOwned(ctx, id, requester)
	if err != nil {
		return model.FileNode{}, nil, err
	}

	if node.Kind == model.NodeKindFolder {
		return model.FileNode{}, nil, model.ErrFolderNoContent
	}

	if size == 0 {
		data, err := s.content.Load(ctx, node.StorageKey)
		if err != nil {
			return model.FileNode{}, nil, wrapContentError(err)
		}
		return node, data, nil
	}

	if !model.ValidThumbnailSize(size) {
		return model.FileNode{}, nil, model.ErrInvalidSize
	}

	data, err := s.content.LoadVariant(ctx, node.StorageKey, size)
	if err != nil {
		return model.FileNode{}, nil, wrapContentError(err)
	}

	return node, data, nil
}

func wrapContentError(err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	return fmt.Errorf("failed to load content: %w", err)
}
