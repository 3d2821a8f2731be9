package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wildpath/migration-zones/internal/core/ports"
)

// mimeGeoJSON is the registered media type for GeoJSON (RFC 7946).
const mimeGeoJSON = "application/geo+json"

// ZoneHandler serves migration zones computed for one species of a dataset.
// Every request runs the pipeline again; nothing is cached between calls.
type ZoneHandler struct {
	service ports.ZoneService
}

func NewZoneHandler(service ports.ZoneService) *ZoneHandler {
	return &ZoneHandler{service: service}
}

// Zones handles GET /v1/datasets/:id/zones.
//
// @Summary      Compute seasonal migration zones for a species
// @Description  Center is null and zones are empty when no record matches the species.
// @Tags         zones
// @Produce      json
// @Param        id       path      string  true  "Dataset ID"
// @Param        species  query     string  true  "Species name, exact match"
// @Success      200      {object}  zoneReportResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /v1/datasets/{id}/zones [get]
func (h *ZoneHandler) Zones(c echo.Context) error {
	var req zonesRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	report, err := h.service.ComputeZones(c.Request().Context(), req.ID, req.Species)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toZoneReportResponse(req.ID, report))
}

// GeoJSON handles GET /v1/datasets/:id/zones.geojson.
//
// @Summary      Seasonal migration zones as a GeoJSON FeatureCollection
// @Tags         zones
// @Produce      application/geo+json
// @Param        id       path      string  true  "Dataset ID"
// @Param        species  query     string  true  "Species name, exact match"
// @Success      200      {object}  map[string]any
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /v1/datasets/{id}/zones.geojson [get]
func (h *ZoneHandler) GeoJSON(c echo.Context) error {
	var req zonesRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	report, err := h.service.ComputeZones(c.Request().Context(), req.ID, req.Species)
	if err != nil {
		return err
	}

	body, err := toFeatureCollection(report).MarshalJSON()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, mimeGeoJSON, body)
}
