package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListPageSize is the fixed window size for node listings.
const ListPageSize = 20

// NodeKind enumerates node kinds.
type NodeKind string

const (
	// NodeKindFolder is a container node without content.
	NodeKindFolder NodeKind = "folder"
	// NodeKindFile is an opaque content node.
	NodeKindFile NodeKind = "file"
	// NodeKindImage is a content node that gets thumbnail derivatives.
	NodeKindImage NodeKind = "image"
)

// Valid reports whether k is a known node kind.
func (k NodeKind) Valid() bool {
	switch k {
	case NodeKindFolder, NodeKindFile, NodeKindImage:
		return true
	}
	return false
}

// RequiresContent reports whether nodes of this kind carry a content blob.
func (k NodeKind) RequiresContent() bool {
	return k == NodeKindFile || k == NodeKindImage
}

// FileNodeStore defines persistence operations for file nodes.
type FileNodeStore interface {
	Create(ctx context.Context, node FileNode) (FileNode, error)
	GetByID(ctx context.Context, id uuid.UUID) (FileNode, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (FileNode, error)
	ListByParent(ctx context.Context, ownerID uuid.UUID, parent ParentRef, offset, limit int) ([]FileNode, error)
	SetPublic(ctx context.Context, id, ownerID uuid.UUID, public bool) (FileNode, error)
}

// FileNode is a folder, file or image owned by a user. Folders never
// carry a storage key; files and images always do once created.
type FileNode struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Name       string
	Kind       NodeKind
	Public     bool
	Parent     ParentRef
	StorageKey string
	Position   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateNodeParams contains parameters to create a file node. Data is nil
// for folders.
type CreateNodeParams struct {
	OwnerID uuid.UUID
	Name    string
	Kind    NodeKind
	Parent  ParentRef
	Public  bool
	Data    []byte
}
