package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wildpath/migration-zones/internal/core/ports"
	"github.com/wildpath/migration-zones/internal/web"
)

// PageHandler serves the HTML pages: the dashboard and the migration map
// embedded in it.
type PageHandler struct {
	service     ports.ZoneService
	zoom        int
	maxUploadMB int64
}

func NewPageHandler(service ports.ZoneService, zoom int, maxUploadMB int64) *PageHandler {
	return &PageHandler{service: service, zoom: zoom, maxUploadMB: maxUploadMB}
}

// Dashboard handles GET /. An optional ?dataset= restores an earlier upload.
func (h *PageHandler) Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, web.TemplateDashboard, web.DashboardView{
		MaxUploadMB: h.maxUploadMB,
		DatasetID:   c.QueryParam("dataset"),
	})
}

// Map handles GET /v1/datasets/:id/map.
//
// @Summary      Render the migration map for a species
// @Tags         zones
// @Produce      html
// @Param        id       path      string  true  "Dataset ID"
// @Param        species  query     string  true  "Species name, exact match"
// @Success      200      {string}  string  "HTML page"
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /v1/datasets/{id}/map [get]
func (h *PageHandler) Map(c echo.Context) error {
	var req zonesRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	report, err := h.service.ComputeZones(c.Request().Context(), req.ID, req.Species)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, web.TemplateMap, web.NewMapView(report, h.zoom))
}
