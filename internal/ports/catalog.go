package ports

import (
	"context"
	"io"

	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

// Catalog lists card images stored under a catalog root.
type Catalog interface {
	// ListPool returns the eligible images in base/tierDir in catalog order.
	// A missing folder yields an empty pool.
	ListPool(ctx context.Context, base, tierDir string) ([]domain.Card, error)
	// FindCover returns the first existing dir/name<ext> in allow-list order.
	FindCover(ctx context.Context, dir, name string) (domain.Card, bool, error)
	// Open opens a catalog file for reading.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// EnsureDir creates path and its parents.
	EnsureDir(ctx context.Context, path string) error
}
