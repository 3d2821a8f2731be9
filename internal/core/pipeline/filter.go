package pipeline

import "github.com/wildpath/migration-zones/internal/core/domain"

// FilterBySpecies keeps the records whose species equals species exactly,
// preserving input order.
func FilterBySpecies(records []domain.TrackRecord, species string) []domain.TrackRecord {
	out := make([]domain.TrackRecord, 0, len(records))
	for _, r := range records {
		if r.Species == species {
			out = append(out, r)
		}
	}
	return out
}

// DistinctSpecies lists species in first-seen order. Blank values are skipped
// so the picker never offers an empty choice.
func DistinctSpecies(records []domain.TrackRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		if r.Species == "" {
			continue
		}
		if _, ok := seen[r.Species]; ok {
			continue
		}
		seen[r.Species] = struct{}{}
		out = append(out, r.Species)
	}
	return out
}

// Center returns the arithmetic mean of the record coordinates, or nil for an
// empty set.
func Center(records []domain.TrackRecord) *domain.Coordinates {
	if len(records) == 0 {
		return nil
	}
	var sumLat, sumLng float64
	for _, r := range records {
		sumLat += r.Latitude
		sumLng += r.Longitude
	}
	n := float64(len(records))
	return &domain.Coordinates{Lat: sumLat / n, Lng: sumLng / n}
}
