// Package disk implements the content store on a local directory. Each
// blob is one opaque-named file under the root; derivatives live next to
// the original with a size suffix.
package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/fileshelf/fileshelf-server/internal/model"
)

var _ model.ContentStore = (*Client)(nil)

// Client stores blobs under a single root directory. Writes go to a
// temporary file first and are renamed into place, so a key never
// resolves to a partially written blob.
type Client struct {
	root string
}

// NewClient creates the root directory if needed and returns a client
// over it.
func NewClient(root string) (*Client, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &Client{root: root}, nil
}

// Save writes data under a freshly generated key and returns the key.
func (c *Client) Save(ctx context.Context, data []byte) (string, error) {
	key := uuid.NewString()
	if err := c.write(key, data); err != nil {
		return "", err
	}
	return key, nil
}

// Load reads the blob stored under key.
func (c *Client) Load(ctx context.Context, key string) ([]byte, error) {
	path, err := c.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return data, nil
}

// SaveVariant writes a size variant of key. Overwriting an existing
// variant is safe; regeneration is idempotent.
func (c *Client) SaveVariant(ctx context.Context, key string, size int, data []byte) error {
	return c.write(model.VariantKey(key, size), data)
}

// LoadVariant reads the size variant of key, or model.ErrNotFound if that
// variant was never generated.
func (c *Client) LoadVariant(ctx context.Context, key string, size int) ([]byte, error) {
	return c.Load(ctx, model.VariantKey(key, size))
}

func (c *Client) path(key string) (string, error) {
	// Keys are generated, flat names; anything path-like is foreign.
	if key == "" || strings.ContainsAny(key, `/\`) || key != filepath.Base(key) {
		return "", model.ErrNotFound
	}
	return filepath.Join(c.root, key), nil
}

func (c *Client) write(key string, data []byte) error {
	path, err := c.path(key)
	if err != nil {
		return fmt.Errorf("refusing to write blob %q", key)
	}

	tmp, err := os.CreateTemp(c.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary blob: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close blob: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish blob: %w", err)
	}
	return nil
}
