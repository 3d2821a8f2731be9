package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wildpath/migration-zones/internal/core/domain"
	"github.com/wildpath/migration-zones/internal/core/ports"
)

// DatasetRepository stores uploads in Redis with a TTL.
// Key format:
//
//	dataset:<id>                 → JSON-encoded domain.Dataset
//	dataset:checksum:<blake2b>   → <id>
type DatasetRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDatasetRepository wraps client; every key written expires after ttl.
func NewDatasetRepository(client *redis.Client, ttl time.Duration) ports.DatasetRepository {
	return &DatasetRepository{client: client, ttl: ttl}
}

func (r *DatasetRepository) Save(ctx context.Context, d *domain.Dataset) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, datasetKey(d.ID), payload, r.ttl)
		if d.Checksum != "" {
			pipe.Set(ctx, checksumKey(d.Checksum), d.ID, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save dataset: %w", err)
	}
	return nil
}

func (r *DatasetRepository) FindByID(ctx context.Context, id string) (*domain.Dataset, error) {
	payload, err := r.client.Get(ctx, datasetKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrDatasetNotFound
		}
		return nil, fmt.Errorf("redis get dataset: %w", err)
	}

	var d domain.Dataset
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &d, nil
}

func (r *DatasetRepository) FindByChecksum(ctx context.Context, checksum string) (*domain.Dataset, error) {
	id, err := r.client.Get(ctx, checksumKey(checksum)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrDatasetNotFound
		}
		return nil, fmt.Errorf("redis get checksum: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *DatasetRepository) Delete(ctx context.Context, id string) error {
	d, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	keys := []string{datasetKey(id)}
	if d.Checksum != "" {
		keys = append(keys, checksumKey(d.Checksum))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete dataset: %w", err)
	}
	return nil
}

func (r *DatasetRepository) Name() string { return "redis" }

func (r *DatasetRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func datasetKey(id string) string {
	return fmt.Sprintf("dataset:%s", id)
}

func checksumKey(checksum string) string {
	return fmt.Sprintf("dataset:checksum:%s", checksum)
}
