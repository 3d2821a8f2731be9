package pipeline

import (
	"fmt"

	"github.com/twpayne/go-geom"

	"github.com/wildpath/migration-zones/internal/core/domain"
	"github.com/wildpath/migration-zones/internal/core/geometry"
)

// zoneFunc builds one zone from a season group. Swapped in tests to exercise
// failure isolation.
var zoneFunc = buildZone

// GroupBySeason buckets records by season. Only seasons that occur get a key.
func GroupBySeason(records []domain.TrackRecord) map[domain.Season][]domain.TrackRecord {
	groups := make(map[domain.Season][]domain.TrackRecord)
	for _, r := range records {
		groups[r.Season] = append(groups[r.Season], r)
	}
	return groups
}

// BuildZones emits one zone per season present in records, in calendar order.
// A season whose polygon cannot be built is reported as a failure and does not
// stop the remaining seasons.
func BuildZones(records []domain.TrackRecord) ([]domain.MigrationZone, []domain.ZoneFailure) {
	groups := GroupBySeason(records)

	var (
		zones    []domain.MigrationZone
		failures []domain.ZoneFailure
	)
	for _, season := range orderedSeasons(groups) {
		zone, err := safeBuild(season, groups[season])
		if err != nil {
			failures = append(failures, domain.ZoneFailure{Season: season, Reason: err.Error()})
			continue
		}
		zones = append(zones, zone)
	}
	return zones, failures
}

// orderedSeasons returns the known seasons in calendar order, followed by any
// unexpected labels in no particular order.
func orderedSeasons(groups map[domain.Season][]domain.TrackRecord) []domain.Season {
	out := make([]domain.Season, 0, len(groups))
	for _, s := range domain.Seasons {
		if _, ok := groups[s]; ok {
			out = append(out, s)
		}
	}
	for s := range groups {
		if !s.Valid() {
			out = append(out, s)
		}
	}
	return out
}

func safeBuild(season domain.Season, group []domain.TrackRecord) (zone domain.MigrationZone, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("geometry panic: %v", r)
		}
	}()
	return zoneFunc(season, group)
}

func buildZone(season domain.Season, group []domain.TrackRecord) (domain.MigrationZone, error) {
	points := make([]geom.Coord, 0, len(group))
	for _, r := range group {
		points = append(points, geom.Coord{r.Longitude, r.Latitude})
	}

	res, err := geometry.Zone(points)
	if err != nil {
		return domain.MigrationZone{}, err
	}

	return domain.MigrationZone{
		Season:         season,
		Shape:          res.Shape,
		Polygon:        res.Polygon,
		PointCount:     len(points),
		DistinctPoints: res.Distinct,
		AreaKm2:        geometry.AreaKm2(res.Polygon),
	}, nil
}
