package geometry

import (
	"github.com/golang/geo/s2"
	"github.com/twpayne/go-geom"
)

// earthRadiusKm is the IUGG mean Earth radius.
const earthRadiusKm = 6371.0088

// AreaKm2 returns the spherical area enclosed by the outer ring of p, in km².
// Degenerate polygons (zero planar area) report 0, as do rings with a vertex
// outside [-180,180]×[-90,90]: such coordinates wrap on the sphere and the
// planar ring no longer describes the region.
func AreaKm2(p *geom.Polygon) float64 {
	if p == nil || p.NumLinearRings() == 0 || p.Area() == 0 {
		return 0
	}

	ring := p.LinearRing(0).Coords()
	if n := len(ring); n > 1 && ring[0].Equal(geom.XY, ring[n-1]) {
		ring = ring[:n-1]
	}
	if len(ring) < 3 {
		return 0
	}

	pts := make([]s2.Point, 0, len(ring))
	for _, c := range ring {
		if !inRange(c) {
			return 0
		}
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(c.Y(), c.X())))
	}

	loop := s2.LoopFromPoints(pts)
	// Ring orientation from the hull routine is not guaranteed; pick the
	// smaller of the two regions the loop bounds.
	loop.Normalize()

	return loop.Area() * earthRadiusKm * earthRadiusKm
}

func inRange(c geom.Coord) bool {
	return c.X() >= -180 && c.X() <= 180 && c.Y() >= -90 && c.Y() <= 90
}
