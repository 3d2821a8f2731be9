package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/twpayne/go-geom"

	"github.com/wildpath/migration-zones/internal/core/domain"
	"github.com/wildpath/migration-zones/internal/core/ports"
	"github.com/wildpath/migration-zones/internal/web"
)

const testDatasetID = "8c7e4f2a-1b3d-4e5f-9a6b-7c8d9e0f1a2b"

type stubZoneService struct {
	uploadFn  func(ctx context.Context, input ports.UploadInput) (*ports.DatasetSummary, error)
	getFn     func(ctx context.Context, id string) (*ports.DatasetSummary, error)
	speciesFn func(ctx context.Context, id string) ([]string, error)
	zonesFn   func(ctx context.Context, id, species string) (*domain.ZoneReport, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (s *stubZoneService) Upload(ctx context.Context, input ports.UploadInput) (*ports.DatasetSummary, error) {
	return s.uploadFn(ctx, input)
}

func (s *stubZoneService) GetDataset(ctx context.Context, id string) (*ports.DatasetSummary, error) {
	return s.getFn(ctx, id)
}

func (s *stubZoneService) ListSpecies(ctx context.Context, id string) ([]string, error) {
	return s.speciesFn(ctx, id)
}

func (s *stubZoneService) ComputeZones(ctx context.Context, id, species string) (*domain.ZoneReport, error) {
	return s.zonesFn(ctx, id, species)
}

func (s *stubZoneService) DeleteDataset(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubStore struct {
	ports.DatasetRepository
	name    string
	pingErr error
}

func (s *stubStore) Name() string { return s.name }

func (s *stubStore) Ping(ctx context.Context) error { return s.pingErr }

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	r, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = r
	return e
}

func datasetContext(e *echo.Echo, method, target, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func multipartUpload(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/datasets", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func summary(alreadyExisted bool) *ports.DatasetSummary {
	uploaded := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	return &ports.DatasetSummary{
		ID:          testDatasetID,
		Filename:    "fox.csv",
		Checksum:    "abc",
		Columns:     []string{"longitude", "latitude", "species", "timestamp"},
		Species:     []string{"Fox", "Owl"},
		RowCount:    6,
		DroppedRows: 1,
		Preview: []domain.TrackRecord{
			{Longitude: 10, Latitude: 20, Species: "Fox", Timestamp: uploaded, Season: domain.SeasonWinter},
		},
		UploadedAt:     uploaded,
		ExpiresAt:      uploaded.Add(time.Hour),
		AlreadyExisted: alreadyExisted,
	}
}

func foxReport() *domain.ZoneReport {
	winter := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{{10, 20}, {12, 20}, {11, 22}, {10, 20}}})
	return &domain.ZoneReport{
		Species:     "Fox",
		RecordCount: 4,
		Center:      &domain.Coordinates{Lat: 21.25, Lng: 12},
		Zones: []domain.MigrationZone{
			{Season: domain.SeasonWinter, Shape: domain.ShapeHull, Polygon: winter, PointCount: 3, DistinctPoints: 3},
		},
		Failures: []domain.ZoneFailure{{Season: domain.SeasonSpring, Reason: "boom"}},
	}
}

// --- Upload ---

func TestDatasetHandler_Upload_Success(t *testing.T) {
	e := newEcho(t)
	stub := &stubZoneService{
		uploadFn: func(ctx context.Context, input ports.UploadInput) (*ports.DatasetSummary, error) {
			body, _ := io.ReadAll(input.Content)
			if input.Filename != "fox.csv" || !strings.HasPrefix(string(body), "location-long") {
				t.Fatalf("unexpected input: %s %q", input.Filename, body)
			}
			return summary(false), nil
		},
	}
	h := NewDatasetHandler(stub, 1<<20)

	rec := httptest.NewRecorder()
	c := e.NewContext(multipartUpload(t, "file", "fox.csv", "location-long,location-lat\n1,2\n"), rec)

	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp datasetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != testDatasetID || resp.RowCount != 6 || resp.DroppedRows != 1 || len(resp.Preview) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Preview[0].Season != "Winter" {
		t.Fatalf("expected season in preview, got %+v", resp.Preview[0])
	}
	if resp.Links.Zones != "/v1/datasets/"+testDatasetID+"/zones" {
		t.Fatalf("unexpected links: %+v", resp.Links)
	}
}

func TestDatasetHandler_Upload_ReplayReturns200(t *testing.T) {
	e := newEcho(t)
	stub := &stubZoneService{
		uploadFn: func(ctx context.Context, input ports.UploadInput) (*ports.DatasetSummary, error) {
			return summary(true), nil
		},
	}
	h := NewDatasetHandler(stub, 1<<20)

	rec := httptest.NewRecorder()
	c := e.NewContext(multipartUpload(t, "file", "fox.csv", "a,b\n"), rec)

	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestDatasetHandler_Upload_MissingFile(t *testing.T) {
	e := newEcho(t)
	h := NewDatasetHandler(&stubZoneService{}, 1<<20)

	rec := httptest.NewRecorder()
	c := e.NewContext(multipartUpload(t, "other", "fox.csv", "a,b\n"), rec)

	if code := httpCode(t, h.Upload(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestDatasetHandler_Upload_RejectsNonCSV(t *testing.T) {
	e := newEcho(t)
	h := NewDatasetHandler(&stubZoneService{}, 1<<20)

	rec := httptest.NewRecorder()
	c := e.NewContext(multipartUpload(t, "file", "fox.xlsx", "a,b\n"), rec)

	if code := httpCode(t, h.Upload(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestDatasetHandler_Upload_TooLarge(t *testing.T) {
	e := newEcho(t)
	h := NewDatasetHandler(&stubZoneService{}, 4)

	rec := httptest.NewRecorder()
	c := e.NewContext(multipartUpload(t, "file", "fox.csv", "location-long,location-lat\n"), rec)

	if code := httpCode(t, h.Upload(c)); code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", code)
	}
}

func TestDatasetHandler_Upload_PropagatesLoadError(t *testing.T) {
	e := newEcho(t)
	stub := &stubZoneService{
		uploadFn: func(ctx context.Context, input ports.UploadInput) (*ports.DatasetSummary, error) {
			return nil, domain.ErrMissingTimestamp
		},
	}
	h := NewDatasetHandler(stub, 1<<20)

	rec := httptest.NewRecorder()
	c := e.NewContext(multipartUpload(t, "file", "fox.csv", "a,b\n"), rec)

	if err := h.Upload(c); !errors.Is(err, domain.ErrMissingTimestamp) {
		t.Fatalf("expected ErrMissingTimestamp, got %v", err)
	}
}

// --- Get / Delete / Species ---

func TestDatasetHandler_Get_InvalidID(t *testing.T) {
	e := newEcho(t)
	stub := &stubZoneService{
		getFn: func(ctx context.Context, id string) (*ports.DatasetSummary, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewDatasetHandler(stub, 1<<20)

	c, _ := datasetContext(e, http.MethodGet, "/v1/datasets/not-a-uuid", "not-a-uuid")

	if code := httpCode(t, h.Get(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestDatasetHandler_Get_NotFound(t *testing.T) {
	e := newEcho(t)
	stub := &stubZoneService{
		getFn: func(ctx context.Context, id string) (*ports.DatasetSummary, error) {
			return nil, domain.ErrDatasetNotFound
		},
	}
	h := NewDatasetHandler(stub, 1<<20)

	c, _ := datasetContext(e, http.MethodGet, "/v1/datasets/"+testDatasetID, testDatasetID)

	if err := h.Get(c); !errors.Is(err, domain.ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound, got %v", err)
	}
}

func TestDatasetHandler_Delete(t *testing.T) {
	e := newEcho(t)
	var deleted string
	stub := &stubZoneService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewDatasetHandler(stub, 1<<20)

	c, rec := datasetContext(e, http.MethodDelete, "/v1/datasets/"+testDatasetID, testDatasetID)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != testDatasetID {
		t.Fatalf("expected 204 and delete of %s, got %d / %q", testDatasetID, rec.Code, deleted)
	}
}

func TestDatasetHandler_Species_EmptyListIsArray(t *testing.T) {
	e := newEcho(t)
	stub := &stubZoneService{
		speciesFn: func(ctx context.Context, id string) ([]string, error) {
			return nil, nil
		},
	}
	h := NewDatasetHandler(stub, 1<<20)

	c, rec := datasetContext(e, http.MethodGet, "/v1/datasets/"+testDatasetID+"/species", testDatasetID)

	if err := h.Species(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"species":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

// --- Zones ---

func TestZoneHandler_Zones(t *testing.T) {
	e := newEcho(t)
	stub := &stubZoneService{
		zonesFn: func(ctx context.Context, id, species string) (*domain.ZoneReport, error) {
			if id != testDatasetID || species != "Red Fox" {
				t.Fatalf("unexpected args: %s %s", id, species)
			}
			return foxReport(), nil
		},
	}
	h := NewZoneHandler(stub)

	c, rec := datasetContext(e, http.MethodGet, "/v1/datasets/"+testDatasetID+"/zones?species=Red+Fox", testDatasetID)

	if err := h.Zones(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp zoneReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Center == nil || resp.Center.Lat != 21.25 || resp.Center.Lng != 12 {
		t.Fatalf("unexpected center: %+v", resp.Center)
	}
	if len(resp.Zones) != 1 || resp.Zones[0].Color != "blue" || len(resp.Zones[0].Ring) != 4 {
		t.Fatalf("unexpected zones: %+v", resp.Zones)
	}
	if resp.Zones[0].Ring[1] != [2]float64{12, 20} {
		t.Fatalf("ring must be [lng, lat], got %v", resp.Zones[0].Ring[1])
	}
	if len(resp.Failures) != 1 || resp.Failures[0].Season != "Spring" {
		t.Fatalf("unexpected failures: %+v", resp.Failures)
	}
}

func TestZoneHandler_Zones_EmptyHasNullCenter(t *testing.T) {
	e := newEcho(t)
	stub := &stubZoneService{
		zonesFn: func(ctx context.Context, id, species string) (*domain.ZoneReport, error) {
			return &domain.ZoneReport{Species: species}, nil
		},
	}
	h := NewZoneHandler(stub)

	c, rec := datasetContext(e, http.MethodGet, "/v1/datasets/"+testDatasetID+"/zones?species=Wolf", testDatasetID)

	if err := h.Zones(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"center":null`) || !strings.Contains(body, `"zones":[]`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestZoneHandler_Zones_SpeciesRequired(t *testing.T) {
	e := newEcho(t)
	h := NewZoneHandler(&stubZoneService{})

	c, _ := datasetContext(e, http.MethodGet, "/v1/datasets/"+testDatasetID+"/zones", testDatasetID)

	if code := httpCode(t, h.Zones(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestZoneHandler_GeoJSON(t *testing.T) {
	e := newEcho(t)
	stub := &stubZoneService{
		zonesFn: func(ctx context.Context, id, species string) (*domain.ZoneReport, error) {
			return foxReport(), nil
		},
	}
	h := NewZoneHandler(stub)

	c, rec := datasetContext(e, http.MethodGet, "/v1/datasets/"+testDatasetID+"/zones.geojson?species=Fox", testDatasetID)

	if err := h.GeoJSON(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != mimeGeoJSON {
		t.Fatalf("unexpected content type %q", ct)
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &fc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 1 {
		t.Fatalf("unexpected collection: %+v", fc)
	}
	f := fc.Features[0]
	if f.Geometry.Type != "Polygon" || f.Properties["season"] != "Winter" || f.Properties["color"] != "blue" {
		t.Fatalf("unexpected feature: %+v", f)
	}
}

// --- Pages ---

func TestPageHandler_Map(t *testing.T) {
	e := newEcho(t)
	stub := &stubZoneService{
		zonesFn: func(ctx context.Context, id, species string) (*domain.ZoneReport, error) {
			return foxReport(), nil
		},
	}
	h := NewPageHandler(stub, 5, 32)

	c, rec := datasetContext(e, http.MethodGet, "/v1/datasets/"+testDatasetID+"/map?species=Fox", testDatasetID)

	if err := h.Map(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Winter Zone") {
		t.Fatalf("unexpected page (%d): %s", rec.Code, rec.Body.String())
	}
}

func TestPageHandler_Dashboard(t *testing.T) {
	e := newEcho(t)
	h := NewPageHandler(&stubZoneService{}, 5, 32)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Animal Migration Dashboard") {
		t.Fatalf("unexpected page: %s", rec.Body.String())
	}
}

// --- Health ---

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		want    int
	}{
		{"healthy", nil, http.StatusOK},
		{"store down", errors.New("connection refused"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho(t)
			h := NewReadinessHandler(&stubStore{name: "redis", pingErr: tt.pingErr})

			req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
			rec := httptest.NewRecorder()

			if err := h.Readiness(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if _, ok := resp.Dependencies["redis"]; !ok {
				t.Fatalf("expected redis dependency, got %+v", resp.Dependencies)
			}
		})
	}
}
