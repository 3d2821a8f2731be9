// Package memory provides an in-process dataset store for single-instance
// deployments. Entries vanish on restart and after their TTL.
package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/wildpath/migration-zones/internal/core/domain"
	"github.com/wildpath/migration-zones/internal/core/ports"
)

const minCleanupInterval = time.Minute

// DatasetRepository implements ports.DatasetRepository on top of go-cache.
// Key format: dataset:<id> → *domain.Dataset, checksum:<blake2b> → id.
type DatasetRepository struct {
	items *cache.Cache
}

// NewDatasetRepository creates a store whose entries expire after ttl.
func NewDatasetRepository(ttl time.Duration) ports.DatasetRepository {
	cleanup := ttl
	if cleanup < minCleanupInterval {
		cleanup = minCleanupInterval
	}
	return &DatasetRepository{items: cache.New(ttl, cleanup)}
}

func (r *DatasetRepository) Save(_ context.Context, d *domain.Dataset) error {
	clone := *d
	r.items.Set(datasetKey(d.ID), &clone, cache.DefaultExpiration)
	if d.Checksum != "" {
		r.items.Set(checksumKey(d.Checksum), d.ID, cache.DefaultExpiration)
	}
	return nil
}

func (r *DatasetRepository) FindByID(_ context.Context, id string) (*domain.Dataset, error) {
	v, ok := r.items.Get(datasetKey(id))
	if !ok {
		return nil, domain.ErrDatasetNotFound
	}
	clone := *v.(*domain.Dataset)
	return &clone, nil
}

func (r *DatasetRepository) FindByChecksum(ctx context.Context, checksum string) (*domain.Dataset, error) {
	v, ok := r.items.Get(checksumKey(checksum))
	if !ok {
		return nil, domain.ErrDatasetNotFound
	}
	return r.FindByID(ctx, v.(string))
}

func (r *DatasetRepository) Delete(ctx context.Context, id string) error {
	d, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	r.items.Delete(datasetKey(id))
	if d.Checksum != "" {
		r.items.Delete(checksumKey(d.Checksum))
	}
	return nil
}

func (r *DatasetRepository) Name() string { return "memory" }

func (r *DatasetRepository) Ping(context.Context) error { return nil }

func datasetKey(id string) string        { return "dataset:" + id }
func checksumKey(checksum string) string { return "checksum:" + checksum }
