package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wildpath/migration-zones/internal/core/domain"
)

func sampleDataset() *domain.Dataset {
	return &domain.Dataset{
		ID:       "7d6c1d1e-8a9b-4c2f-9e0a-1b2c3d4e5f60",
		Filename: "fox.csv",
		Checksum: "abc123",
		Records: []domain.TrackRecord{
			{Longitude: 10, Latitude: 20, Species: "Fox", Season: domain.SeasonWinter},
		},
		Species: []string{"Fox"},
	}
}

func TestDatasetRepository_SaveAndFind(t *testing.T) {
	repo := NewDatasetRepository(time.Hour)
	ctx := context.Background()

	if err := repo.Save(ctx, sampleDataset()); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.FindByID(ctx, sampleDataset().ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if got.Filename != "fox.csv" || len(got.Records) != 1 {
		t.Fatalf("unexpected dataset: %+v", got)
	}

	byChecksum, err := repo.FindByChecksum(ctx, "abc123")
	if err != nil {
		t.Fatalf("find by checksum: %v", err)
	}
	if byChecksum.ID != got.ID {
		t.Fatalf("checksum lookup returned %s", byChecksum.ID)
	}
}

func TestDatasetRepository_NotFound(t *testing.T) {
	repo := NewDatasetRepository(time.Hour)
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, "nope"); !errors.Is(err, domain.ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound, got %v", err)
	}
	if _, err := repo.FindByChecksum(ctx, "nope"); !errors.Is(err, domain.ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "nope"); !errors.Is(err, domain.ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound, got %v", err)
	}
}

func TestDatasetRepository_DeleteDropsChecksum(t *testing.T) {
	repo := NewDatasetRepository(time.Hour)
	ctx := context.Background()
	_ = repo.Save(ctx, sampleDataset())

	if err := repo.Delete(ctx, sampleDataset().ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByChecksum(ctx, "abc123"); !errors.Is(err, domain.ErrDatasetNotFound) {
		t.Fatalf("checksum index survived delete: %v", err)
	}
}

func TestDatasetRepository_Expires(t *testing.T) {
	repo := NewDatasetRepository(20 * time.Millisecond)
	ctx := context.Background()
	_ = repo.Save(ctx, sampleDataset())

	time.Sleep(40 * time.Millisecond)

	if _, err := repo.FindByID(ctx, sampleDataset().ID); !errors.Is(err, domain.ErrDatasetNotFound) {
		t.Fatalf("expected dataset to expire, got %v", err)
	}
}

func TestDatasetRepository_ReturnsCopies(t *testing.T) {
	repo := NewDatasetRepository(time.Hour)
	ctx := context.Background()
	_ = repo.Save(ctx, sampleDataset())

	got, _ := repo.FindByID(ctx, sampleDataset().ID)
	got.Filename = "changed.csv"

	again, _ := repo.FindByID(ctx, sampleDataset().ID)
	if again.Filename != "fox.csv" {
		t.Fatalf("stored dataset was mutated through a returned copy")
	}
}
