package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fileshelf/fileshelf-server/internal/model"
)

var _ model.FileNodeStore = (*FileNodeRepository)(nil)

const nodeColumns = `id, owner_id, name, kind, is_public, parent_id, storage_key, position, created_at, updated_at`

type FileNodeRepository struct {
	db *Connection
}

func NewFileNodeRepository(db *Connection) *FileNodeRepository {
	return &FileNodeRepository{
		db: db,
	}
}

func scanNode(row pgx.Row) (model.FileNode, error) {
	var node model.FileNode
	var kind string
	var parentID *uuid.UUID

	err := row.Scan(
		&node.ID, &node.OwnerID, &node.Name, &kind, &node.Public,
		&parentID, &node.StorageKey, &node.Position, &node.CreatedAt, &node.UpdatedAt,
	)
	if err != nil {
		return model.FileNode{}, err
	}

	node.Kind = model.NodeKind(kind)
	if parentID != nil {
		node.Parent = model.NodeParent(*parentID)
	} else {
		node.Parent = model.RootParent()
	}

	return node, nil
}

func (r *FileNodeRepository) Create(ctx context.Context, node model.FileNode) (model.FileNode, error) {
	if node.ID == uuid.Nil {
		node.ID = uuid.New()
	}

	var parentID *uuid.UUID
	if id, ok := node.Parent.NodeID(); ok {
		parentID = &id
	}

	query := `INSERT INTO file_nodes (id, owner_id, name, kind, is_public, parent_id, storage_key, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + nodeColumns

	saved, err := scanNode(r.db.QueryRow(ctx, query,
		node.ID, node.OwnerID, node.Name, string(node.Kind), node.Public,
		parentID, node.StorageKey, node.CreatedAt, node.UpdatedAt,
	))
	if err != nil {
		return model.FileNode{}, fmt.Errorf("failed to create file node: %w", err)
	}

	return saved, nil
}

func (r *FileNodeRepository) GetByID(ctx context.Context, id uuid.UUID) (model.FileNode, error) {
	query := `SELECT ` + nodeColumns + ` FROM file_nodes WHERE id = $1`

	node, err := scanNode(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FileNode{}, model.ErrNotFound
		}
		return model.FileNode{}, fmt.Errorf("failed to get file node by id: %w", err)
	}

	return node, nil
}

func (r *FileNodeRepository) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (model.FileNode, error) {
	query := `SELECT ` + nodeColumns + ` FROM file_nodes WHERE id = $1 AND owner_id = $2`

	node, err := scanNode(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FileNode{}, model.ErrNotFound
		}
		return model.FileNode{}, fmt.Errorf("failed to get file node by id and owner: %w", err)
	}

	return node, nil
}

func (r *FileNodeRepository) ListByParent(ctx context.Context, ownerID uuid.UUID, parent model.ParentRef, offset, limit int) ([]model.FileNode, error) {
	var rows pgx.Rows
	var err error

	if parentID, ok := parent.NodeID(); ok {
		query := `SELECT ` + nodeColumns + `
				  FROM file_nodes WHERE owner_id = $1 AND parent_id = $2
				  ORDER BY position LIMIT $3 OFFSET $4`
		rows, err = r.db.Query(ctx, query, ownerID, parentID, limit, offset)
	} else {
		query := `SELECT ` + nodeColumns + `
				  FROM file_nodes WHERE owner_id = $1 AND parent_id IS NULL
				  ORDER BY position LIMIT $2 OFFSET $3`
		rows, err = r.db.Query(ctx, query, ownerID, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list file nodes: %w", err)
	}
	defer rows.Close()

	nodes := make([]model.FileNode, 0)
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file node: %w", err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file node rows: %w", err)
	}

	return nodes, nil
}

// SetPublic flips visibility with a single atomic update scoped to the
// owner, so concurrent toggles never lose writes and foreign ids stay
// indistinguishable from missing ones.
func (r *FileNodeRepository) SetPublic(ctx context.Context, id, ownerID uuid.UUID, public bool) (model.FileNode, error) {
	query := `UPDATE file_nodes SET is_public = $3, updated_at = NOW()
			  WHERE id = $1 AND owner_id = $2
			  RETURNING ` + nodeColumns

	node, err := scanNode(r.db.QueryRow(ctx, query, id, ownerID, public))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FileNode{}, model.ErrNotFound
		}
		return model.FileNode{}, fmt.Errorf("failed to update file node visibility: %w", err)
	}

	return node, nil
}
