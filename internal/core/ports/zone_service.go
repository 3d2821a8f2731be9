package ports

import (
	"context"
	"io"
	"time"

	"github.com/wildpath/migration-zones/internal/core/domain"
)

// UploadInput is the DTO passed from the transport layer to ZoneService.Upload.
type UploadInput struct {
	Filename string
	Content  io.Reader
}

// DatasetSummary describes a stored upload without its full record set.
type DatasetSummary struct {
	ID          string
	Filename    string
	Checksum    string
	Columns     []string
	Species     []string
	RowCount    int
	DroppedRows int
	// Preview holds the first rows of the normalized data.
	Preview    []domain.TrackRecord
	UploadedAt time.Time
	ExpiresAt  time.Time
	// AlreadyExisted is true when identical bytes were uploaded earlier and the
	// live dataset was returned instead of a new one.
	AlreadyExisted bool
}

// ZoneService defines the use cases behind the dashboard.
type ZoneService interface {
	Upload(ctx context.Context, input UploadInput) (*DatasetSummary, error)
	GetDataset(ctx context.Context, id string) (*DatasetSummary, error)
	ListSpecies(ctx context.Context, id string) ([]string, error)
	// ComputeZones runs the filter and zone builder for one species. Nothing
	// is cached between calls.
	ComputeZones(ctx context.Context, id, species string) (*domain.ZoneReport, error)
	DeleteDataset(ctx context.Context, id string) error
}
