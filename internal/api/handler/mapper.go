package handler

import (
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/wildpath/migration-zones/internal/core/domain"
	"github.com/wildpath/migration-zones/internal/core/ports"
)

// --- Service result → HTTP response ---

func datasetPath(id string) string { return "/v1/datasets/" + id }

func toDatasetResponse(s *ports.DatasetSummary) datasetResponse {
	preview := make([]recordResponse, 0, len(s.Preview))
	for _, r := range s.Preview {
		preview = append(preview, toRecordResponse(r))
	}
	self := datasetPath(s.ID)
	return datasetResponse{
		ID:             s.ID,
		Filename:       s.Filename,
		Checksum:       s.Checksum,
		Columns:        s.Columns,
		Species:        s.Species,
		RowCount:       s.RowCount,
		DroppedRows:    s.DroppedRows,
		Preview:        preview,
		UploadedAt:     s.UploadedAt.UTC(),
		ExpiresAt:      s.ExpiresAt.UTC(),
		AlreadyExisted: s.AlreadyExisted,
		Links: datasetLinks{
			Self:    self,
			Species: self + "/species",
			Zones:   self + "/zones",
			Map:     self + "/map",
		},
	}
}

func toRecordResponse(r domain.TrackRecord) recordResponse {
	return recordResponse{
		Longitude:  r.Longitude,
		Latitude:   r.Latitude,
		AnimalID:   r.AnimalID,
		Species:    r.Species,
		Timestamp:  r.Timestamp,
		Season:     r.Season.String(),
		Attributes: r.Attributes,
	}
}

func toZoneReportResponse(datasetID string, r *domain.ZoneReport) zoneReportResponse {
	resp := zoneReportResponse{
		DatasetID:   datasetID,
		Species:     r.Species,
		RecordCount: r.RecordCount,
		Zones:       make([]zoneResponse, 0, len(r.Zones)),
		Failures:    make([]zoneFailureResponse, 0, len(r.Failures)),
	}
	if r.Center != nil {
		resp.Center = &coordinatesResponse{Lat: r.Center.Lat, Lng: r.Center.Lng}
	}
	for _, z := range r.Zones {
		resp.Zones = append(resp.Zones, zoneResponse{
			Season:         z.Season.String(),
			Shape:          string(z.Shape),
			Color:          z.Season.Color(),
			PointCount:     z.PointCount,
			DistinctPoints: z.DistinctPoints,
			AreaKm2:        z.AreaKm2,
			Ring:           ringOf(z),
		})
	}
	for _, f := range r.Failures {
		resp.Failures = append(resp.Failures, zoneFailureResponse{Season: f.Season.String(), Reason: f.Reason})
	}
	return resp
}

func ringOf(z domain.MigrationZone) [][2]float64 {
	if z.Polygon == nil || z.Polygon.NumLinearRings() == 0 {
		return nil
	}
	coords := z.Polygon.LinearRing(0).Coords()
	ring := make([][2]float64, 0, len(coords))
	for _, c := range coords {
		ring = append(ring, [2]float64{c.X(), c.Y()})
	}
	return ring
}

// toFeatureCollection renders each zone as a polygon feature carrying its
// season, shape and display color.
func toFeatureCollection(r *domain.ZoneReport) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(r.Zones))}
	for _, z := range r.Zones {
		if z.Polygon == nil {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       z.Season.String(),
			Geometry: z.Polygon,
			Properties: map[string]any{
				"species":         r.Species,
				"season":          z.Season.String(),
				"shape":           string(z.Shape),
				"color":           z.Season.Color(),
				"point_count":     z.PointCount,
				"distinct_points": z.DistinctPoints,
				"area_km2":        z.AreaKm2,
			},
		})
	}
	return fc
}
