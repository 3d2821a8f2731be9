// Package metrics defines and registers all custom Prometheus metrics for the
// migration zones service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "migration"

// ── Upload metrics ────────────────────────────────────────────────────────────

// UploadsTotal counts dataset uploads.
// Label:
//   - result: "stored", "replayed" (identical bytes already live) or "rejected"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of CSV uploads, by result.",
	},
	[]string{"result"},
)

// RowsParsedTotal counts data rows kept by the loader.
var RowsParsedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_parsed_total",
		Help:      "Total number of CSV rows parsed into track records.",
	},
)

// RowsDroppedTotal counts malformed rows skipped by the loader.
var RowsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_dropped_total",
		Help:      "Total number of malformed CSV rows dropped during parsing.",
	},
)

// ── Zone metrics ──────────────────────────────────────────────────────────────

// ZonesBuiltTotal counts zone polygons produced.
// Labels:
//   - season: "Winter", "Spring", "Summer" or "Autumn"
//   - shape:  "hull" or "envelope"
var ZonesBuiltTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "zones_built_total",
		Help:      "Total number of migration zones built, by season and shape.",
	},
	[]string{"season", "shape"},
)

// ZoneFailuresTotal counts season groups whose polygon could not be built.
// Label:
//   - season: the season of the failed group
var ZoneFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "zone_failures_total",
		Help:      "Total number of season groups whose zone computation failed.",
	},
	[]string{"season"},
)

// PipelineDuration measures how long each pipeline stage takes.
// Label:
//   - operation: "load" or "compute"
var PipelineDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of CSV loading and zone computation.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)
