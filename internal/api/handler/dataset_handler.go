package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wildpath/migration-zones/internal/core/ports"
)

// uploadField is the multipart form field carrying the CSV file.
const uploadField = "file"

// DatasetHandler handles upload and lifecycle of parsed CSV datasets.
type DatasetHandler struct {
	service        ports.ZoneService
	maxUploadBytes int64
}

func NewDatasetHandler(service ports.ZoneService, maxUploadBytes int64) *DatasetHandler {
	return &DatasetHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// Upload handles POST /v1/datasets.
//
// @Summary      Upload an animal tracking CSV
// @Description  Parses the file, renames known columns and derives seasons. Identical bytes uploaded again while the first dataset is live return that dataset with 200.
// @Tags         datasets
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file with a header row"
// @Success      201   {object}  datasetResponse
// @Success      200   {object}  datasetResponse
// @Failure      400   {object}  errorResponse
// @Failure      413   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/datasets [post]
func (h *DatasetHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "please upload a CSV file in the \"file\" field")
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "only .csv files are accepted")
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "uploaded file is too large")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "uploaded file could not be read")
	}
	defer f.Close()

	summary, err := h.service.Upload(c.Request().Context(), ports.UploadInput{
		Filename: filepath.Base(fh.Filename),
		Content:  f,
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if summary.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toDatasetResponse(summary))
}

// Get handles GET /v1/datasets/:id.
//
// @Summary      Get an uploaded dataset
// @Tags         datasets
// @Produce      json
// @Param        id   path      string  true  "Dataset ID"
// @Success      200  {object}  datasetResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/datasets/{id} [get]
func (h *DatasetHandler) Get(c echo.Context) error {
	var req datasetRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	summary, err := h.service.GetDataset(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDatasetResponse(summary))
}

// Delete handles DELETE /v1/datasets/:id.
//
// @Summary      Discard an uploaded dataset
// @Tags         datasets
// @Param        id   path  string  true  "Dataset ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/datasets/{id} [delete]
func (h *DatasetHandler) Delete(c echo.Context) error {
	var req datasetRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	if err := h.service.DeleteDataset(c.Request().Context(), req.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Species handles GET /v1/datasets/:id/species.
//
// @Summary      List the species present in a dataset
// @Tags         datasets
// @Produce      json
// @Param        id   path      string  true  "Dataset ID"
// @Success      200  {object}  speciesResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/datasets/{id}/species [get]
func (h *DatasetHandler) Species(c echo.Context) error {
	var req datasetRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	species, err := h.service.ListSpecies(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	if species == nil {
		species = []string{}
	}
	return c.JSON(http.StatusOK, speciesResponse{DatasetID: req.ID, Species: species})
}
