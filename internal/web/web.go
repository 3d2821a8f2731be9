// Package web renders the dashboard and the Leaflet migration map from
// embedded html/template files.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/wildpath/migration-zones/internal/core/domain"
)

// Template names accepted by Renderer.Render.
const (
	TemplateDashboard = "dashboard.html"
	TemplateMap       = "map.html"
)

// Map viewport and styling.
const (
	MapWidth        = 900
	MapHeight       = 500
	ZoneFillOpacity = 0.3
	DefaultZoom     = 5
)

//go:embed templates/*.html
var files embed.FS

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every embedded template once.
func NewRenderer() (*Renderer, error) {
	t, err := template.New("").ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// DashboardView feeds the dashboard page.
type DashboardView struct {
	MaxUploadMB int64
	// DatasetID restores a previous upload when set.
	DatasetID string
}

// MapZone is one polygon as Leaflet expects it.
type MapZone struct {
	Season  string       `json:"season"`
	Color   string       `json:"color"`
	Tooltip string       `json:"tooltip"`
	Shape   string       `json:"shape"`
	LatLngs [][2]float64 `json:"latlngs"`
}

// MapView feeds the map page. When Empty is set the page shows a no-data
// notice instead of a map, since there is no center to place it on.
type MapView struct {
	Species     string
	RecordCount int
	Empty       bool
	Center      [2]float64 // lat, lng
	Zoom        int
	Width       int
	Height      int
	FillOpacity float64
	Zones       []MapZone
	Failures    []domain.ZoneFailure
}

// NewMapView turns a zone report into a map page model.
func NewMapView(report *domain.ZoneReport, zoom int) MapView {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	v := MapView{
		Species:     report.Species,
		RecordCount: report.RecordCount,
		Empty:       report.Center == nil,
		Zoom:        zoom,
		Width:       MapWidth,
		Height:      MapHeight,
		FillOpacity: ZoneFillOpacity,
		Zones:       make([]MapZone, 0, len(report.Zones)),
		Failures:    report.Failures,
	}
	if report.Center != nil {
		v.Center = [2]float64{report.Center.Lat, report.Center.Lng}
	}
	for _, z := range report.Zones {
		vertices := z.Vertices()
		latlngs := make([][2]float64, 0, len(vertices))
		for _, c := range vertices {
			latlngs = append(latlngs, [2]float64{c.Y(), c.X()})
		}
		v.Zones = append(v.Zones, MapZone{
			Season:  z.Season.String(),
			Color:   z.Season.Color(),
			Tooltip: z.Season.String() + " Zone",
			Shape:   string(z.Shape),
			LatLngs: latlngs,
		})
	}
	return v
}
