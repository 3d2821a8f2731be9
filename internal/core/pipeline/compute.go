package pipeline

import "github.com/wildpath/migration-zones/internal/core/domain"

// Compute runs the species filter and zone builder over already loaded
// records. It is called afresh for every species selection.
func Compute(records []domain.TrackRecord, species string) *domain.ZoneReport {
	filtered := FilterBySpecies(records, species)
	report := &domain.ZoneReport{
		Species:     species,
		RecordCount: len(filtered),
		Center:      Center(filtered),
	}
	if len(filtered) == 0 {
		return report
	}
	report.Zones, report.Failures = BuildZones(filtered)
	return report
}
