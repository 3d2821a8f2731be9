package domain

import "github.com/twpayne/go-geom"

// ZoneShape tells how a zone polygon was obtained.
type ZoneShape string

const (
	// ShapeHull is the convex hull of at least three non-collinear points.
	ShapeHull ZoneShape = "hull"
	// ShapeEnvelope is the axis-aligned bounding rectangle, used whenever the
	// hull would be degenerate. It may have zero area.
	ShapeEnvelope ZoneShape = "envelope"
)

// Coordinates is a geographic point in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MigrationZone is the area covered by one species during one season.
type MigrationZone struct {
	Season         Season
	Shape          ZoneShape
	Polygon        *geom.Polygon // closed ring, x = longitude, y = latitude
	PointCount     int
	DistinctPoints int
	AreaKm2        float64
}

// Vertices returns the ring of the zone polygon without the closing vertex.
func (z MigrationZone) Vertices() []geom.Coord {
	if z.Polygon == nil || z.Polygon.NumLinearRings() == 0 {
		return nil
	}
	ring := z.Polygon.LinearRing(0).Coords()
	if n := len(ring); n > 1 && ring[0].Equal(geom.XY, ring[n-1]) {
		ring = ring[:n-1]
	}
	return ring
}

// ZoneFailure records a season whose polygon could not be built.
type ZoneFailure struct {
	Season Season `json:"season"`
	Reason string `json:"reason"`
}

// ZoneReport is the outcome of one pipeline run for one species.
type ZoneReport struct {
	Species     string
	RecordCount int
	// Center is the mean coordinate of the filtered records, nil when none matched.
	Center   *Coordinates
	Zones    []MigrationZone
	Failures []ZoneFailure
}

// Empty reports whether the selected species matched no records.
func (r *ZoneReport) Empty() bool { return r.RecordCount == 0 }
