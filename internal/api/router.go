package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/wildpath/migration-zones/internal/api/handler"
	"github.com/wildpath/migration-zones/internal/core/ports"
	"github.com/wildpath/migration-zones/internal/web"
)

// Dependencies groups everything the router wires into handlers.
type Dependencies struct {
	Service ports.ZoneService
	// Store is pinged by the readiness check.
	Store  ports.DatasetRepository
	Logger zerolog.Logger

	// MaxUploadBytes caps the size of one uploaded file.
	MaxUploadBytes int64
	MapZoom        int

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Renderer = renderer

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "migration",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	datasetHandler := handler.NewDatasetHandler(deps.Service, deps.MaxUploadBytes)
	zoneHandler := handler.NewZoneHandler(deps.Service)
	pageHandler := handler.NewPageHandler(deps.Service, deps.MapZoom, deps.MaxUploadBytes>>20)

	// --- Pages ---
	e.GET("/", pageHandler.Dashboard)

	// --- Datasets ---
	v1 := e.Group("/v1")
	// The body also carries multipart framing, so allow one extra MiB.
	uploadLimit := echomiddleware.BodyLimit(strconv.FormatInt(deps.MaxUploadBytes+1<<20, 10))
	v1.POST("/datasets", datasetHandler.Upload, uploadLimit)
	v1.GET("/datasets/:id", datasetHandler.Get)
	v1.DELETE("/datasets/:id", datasetHandler.Delete)
	v1.GET("/datasets/:id/species", datasetHandler.Species)
	v1.GET("/datasets/:id/zones", zoneHandler.Zones)
	v1.GET("/datasets/:id/zones.geojson", zoneHandler.GeoJSON)
	v1.GET("/datasets/:id/map", pageHandler.Map)

	// --- Health checks ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Store)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the dataset store up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

// requestLogger logs one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				evt = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
