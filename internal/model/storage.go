package model

import (
	"context"
	"fmt"
	"slices"
)

// ThumbnailSizes are the widths, in pixels, generated for every image
// node. They double as the allowed values of the data endpoint's size
// parameter.
var ThumbnailSizes = []int{100, 250, 500}

// ValidThumbnailSize reports whether size is a generated derivative size.
func ValidThumbnailSize(size int) bool {
	return slices.Contains(ThumbnailSizes, size)
}

// VariantKey returns the storage key of the size variant of key. The
// convention makes derivatives addressable without a separate index.
func VariantKey(key string, size int) string {
	return fmt.Sprintf("%s_%d", key, size)
}

// ContentStore is durable byte storage addressed by generated keys.
// A key never resolves to partially written content: implementations
// publish a key only after the write completed.
type ContentStore interface {
	Save(ctx context.Context, data []byte) (string, error)
	Load(ctx context.Context, key string) ([]byte, error)
	SaveVariant(ctx context.Context, key string, size int, data []byte) error
	LoadVariant(ctx context.Context, key string, size int) ([]byte, error)
}
