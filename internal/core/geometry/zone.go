// Package geometry wraps the go-geom routines used to turn a season's
// observations into a zone polygon.
//
// Coordinates are planar (x = longitude, y = latitude) for hull and envelope;
// only AreaKm2 works on the sphere.
package geometry

import (
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"github.com/wildpath/migration-zones/internal/core/domain"
)

// ErrNoPoints is returned when a zone is requested for an empty point set.
var ErrNoPoints = errors.New("geometry: no points")

// Result is the polygon chosen for a point set.
type Result struct {
	Polygon  *geom.Polygon
	Shape    domain.ZoneShape
	Distinct int
}

// Zone returns the convex hull of points when the distinct point set spans a
// non-degenerate hull (at least three vertices, non-zero area). Otherwise it
// falls back to the axis-aligned envelope, which is always a closed
// four-vertex ring even when it collapses to a segment or a single point.
func Zone(points []geom.Coord) (Result, error) {
	if len(points) == 0 {
		return Result{}, ErrNoPoints
	}

	distinct := Distinct(points)
	if len(distinct) >= 3 {
		if hull, ok := ConvexHull(distinct); ok {
			return Result{Polygon: hull, Shape: domain.ShapeHull, Distinct: len(distinct)}, nil
		}
	}

	env, err := Envelope(distinct)
	if err != nil {
		return Result{}, err
	}
	return Result{Polygon: env, Shape: domain.ShapeEnvelope, Distinct: len(distinct)}, nil
}

// Distinct drops repeated coordinates, keeping first-seen order.
func Distinct(points []geom.Coord) []geom.Coord {
	seen := make(map[[2]float64]struct{}, len(points))
	out := make([]geom.Coord, 0, len(points))
	for _, p := range points {
		key := [2]float64{p.X(), p.Y()}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, geom.Coord{p.X(), p.Y()})
	}
	return out
}

// ConvexHull computes the hull of points. ok is false when the hull is not a
// proper polygon (collinear input, fewer than three vertices or zero area).
func ConvexHull(points []geom.Coord) (hull *geom.Polygon, ok bool) {
	if len(points) < 3 {
		return nil, false
	}

	flat := make([]float64, 0, 2*len(points))
	for _, p := range points {
		flat = append(flat, p.X(), p.Y())
	}

	poly, isPolygon := xy.ConvexHull(geom.NewMultiPointFlat(geom.XY, flat)).(*geom.Polygon)
	if !isPolygon || poly.NumLinearRings() == 0 {
		return nil, false
	}
	// A closed ring with three vertices carries four coordinates.
	if poly.LinearRing(0).NumCoords() < 4 || poly.Area() == 0 {
		return nil, false
	}
	return poly, true
}

// Envelope returns the minimal axis-aligned rectangle containing points as a
// closed ring: (minX,minY) → (maxX,minY) → (maxX,maxY) → (minX,maxY).
func Envelope(points []geom.Coord) (*geom.Polygon, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	mp, err := geom.NewMultiPoint(geom.XY).SetCoords(points)
	if err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}
	b := mp.Bounds()
	minX, minY := b.Min(0), b.Min(1)
	maxX, maxY := b.Max(0), b.Max(1)

	ring := []geom.Coord{
		{minX, minY},
		{maxX, minY},
		{maxX, maxY},
		{minX, maxY},
		{minX, minY},
	}
	poly, err := geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{ring})
	if err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}
	return poly, nil
}
