package service

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/wildpath/migration-zones/internal/core/domain"
	"github.com/wildpath/migration-zones/internal/core/pipeline"
	"github.com/wildpath/migration-zones/internal/core/ports"
	"github.com/wildpath/migration-zones/internal/pkg/metrics"
)

// previewRows mirrors the dashboard's head() preview.
const previewRows = 5

type ZoneService struct {
	repo   ports.DatasetRepository
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time
}

// NewZoneService returns a ZoneService backed by repo. ttl is only used to
// report when a dataset expires; the repository enforces it.
func NewZoneService(repo ports.DatasetRepository, ttl time.Duration, logger zerolog.Logger) *ZoneService {
	return &ZoneService{
		repo:   repo,
		ttl:    ttl,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Upload parses the CSV and stores the resulting dataset. Uploading the exact
// same bytes while the first dataset is still alive returns that dataset.
func (s *ZoneService) Upload(ctx context.Context, input ports.UploadInput) (*ports.DatasetSummary, error) {
	data, err := io.ReadAll(input.Content)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	checksum := fingerprint(data)

	existing, err := s.repo.FindByChecksum(ctx, checksum)
	switch {
	case err == nil && existing != nil:
		metrics.UploadsTotal.WithLabelValues("replayed").Inc()
		s.logger.Info().Str("dataset_id", existing.ID).Str("checksum", checksum).Msg("upload replayed")
		summary := s.summarize(existing)
		summary.AlreadyExisted = true
		return summary, nil
	case err != nil && !errors.Is(err, domain.ErrDatasetNotFound):
		s.logger.Warn().Err(err).Str("checksum", checksum).Msg("checksum lookup failed, storing anyway")
	}

	start := time.Now()
	loaded, err := pipeline.Load(bytes.NewReader(data))
	metrics.PipelineDuration.WithLabelValues("load").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		s.logger.Info().Err(err).Str("filename", input.Filename).Msg("upload rejected")
		return nil, err
	}

	ds := &domain.Dataset{
		ID:          uuid.NewString(),
		Filename:    input.Filename,
		Checksum:    checksum,
		Columns:     loaded.Columns,
		Records:     loaded.Records,
		Species:     pipeline.DistinctSpecies(loaded.Records),
		DroppedRows: loaded.Dropped,
		UploadedAt:  s.now(),
	}
	if err := s.repo.Save(ctx, ds); err != nil {
		s.logger.Error().Err(err).Str("dataset_id", ds.ID).Msg("failed to store dataset")
		return nil, fmt.Errorf("store dataset: %w", err)
	}

	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	metrics.RowsParsedTotal.Add(float64(len(ds.Records)))
	metrics.RowsDroppedTotal.Add(float64(ds.DroppedRows))
	s.logger.Info().
		Str("dataset_id", ds.ID).
		Str("filename", ds.Filename).
		Int("rows", len(ds.Records)).
		Int("dropped", ds.DroppedRows).
		Int("species", len(ds.Species)).
		Msg("dataset stored")

	return s.summarize(ds), nil
}

// GetDataset returns the summary of a live dataset.
func (s *ZoneService) GetDataset(ctx context.Context, id string) (*ports.DatasetSummary, error) {
	ds, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.summarize(ds), nil
}

// ListSpecies returns the distinct species of a dataset in first-seen order.
func (s *ZoneService) ListSpecies(ctx context.Context, id string) ([]string, error) {
	ds, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ds.Species, nil
}

// ComputeZones runs the pipeline for one species. A species absent from the
// dataset yields an empty report, not an error.
func (s *ZoneService) ComputeZones(ctx context.Context, id, species string) (*domain.ZoneReport, error) {
	ds, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report := pipeline.Compute(ds.Records, species)
	metrics.PipelineDuration.WithLabelValues("compute").Observe(time.Since(start).Seconds())

	for _, z := range report.Zones {
		metrics.ZonesBuiltTotal.WithLabelValues(string(z.Season), string(z.Shape)).Inc()
	}
	for _, f := range report.Failures {
		metrics.ZoneFailuresTotal.WithLabelValues(string(f.Season)).Inc()
		s.logger.Warn().
			Str("dataset_id", id).
			Str("species", species).
			Str("season", string(f.Season)).
			Str("reason", f.Reason).
			Msg("zone computation failed")
	}

	s.logger.Debug().
		Str("dataset_id", id).
		Str("species", species).
		Int("rows", report.RecordCount).
		Int("zones", len(report.Zones)).
		Msg("zones computed")

	return report, nil
}

// DeleteDataset discards an upload before its TTL runs out.
func (s *ZoneService) DeleteDataset(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("dataset_id", id).Msg("dataset deleted")
	return nil
}

func (s *ZoneService) summarize(ds *domain.Dataset) *ports.DatasetSummary {
	preview := ds.Records
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}
	return &ports.DatasetSummary{
		ID:          ds.ID,
		Filename:    ds.Filename,
		Checksum:    ds.Checksum,
		Columns:     ds.Columns,
		Species:     ds.Species,
		RowCount:    ds.RowCount(),
		DroppedRows: ds.DroppedRows,
		Preview:     preview,
		UploadedAt:  ds.UploadedAt,
		ExpiresAt:   ds.UploadedAt.Add(s.ttl),
	}
}

// fingerprint returns the hex BLAKE2b-256 digest of an upload.
func fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
