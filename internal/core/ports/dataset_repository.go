package ports

import (
	"context"

	"github.com/wildpath/migration-zones/internal/core/domain"
)

// DatasetRepository keeps parsed uploads for the length of an upload session.
// Implementations expire entries on their own; a dataset past its TTL behaves
// exactly like one that was never saved.
type DatasetRepository interface {
	Save(ctx context.Context, d *domain.Dataset) error
	// FindByID returns domain.ErrDatasetNotFound when the ID is unknown or expired.
	FindByID(ctx context.Context, id string) (*domain.Dataset, error)
	// FindByChecksum looks up a live dataset uploaded with identical bytes.
	FindByChecksum(ctx context.Context, checksum string) (*domain.Dataset, error)
	Delete(ctx context.Context, id string) error

	// Name identifies the backend in readiness reports ("memory", "redis", "mongodb").
	Name() string
	Ping(ctx context.Context) error
}
