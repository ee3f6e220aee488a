// Package metrics defines all custom Prometheus metrics for the CampusOps
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "campusops"

// ── Management metrics ────────────────────────────────────────────────────────

// EntityOperationsTotal counts CRUD operations on managed collections.
// Labels:
//   - tab: "events", "members", "budget", or "reports"
//   - operation: "list", "create", "update", or "delete"
var EntityOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entity_operations_total",
		Help:      "Total number of CRUD operations on managed collections.",
	},
	[]string{"tab", "operation"},
)

// ── AI metrics ────────────────────────────────────────────────────────────────

// AIRequestsTotal counts AI feature invocations.
// Labels:
//   - feature: "report", "feedback", "budget", "mou", "caption", or "ocr"
//   - outcome: "ok" or "error"
var AIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_requests_total",
		Help:      "Total number of AI feature requests, by feature and outcome.",
	},
	[]string{"feature", "outcome"},
)

// AIRequestDuration measures how long an AI feature request takes end-to-end,
// model call included.
var AIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_request_duration_seconds",
		Help:      "Duration of AI feature requests including model round-trips.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	},
	[]string{"feature"},
)

// DocumentsGeneratedTotal counts rendered DOCX documents.
// Label:
//   - kind: "report" or "mou"
var DocumentsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_generated_total",
		Help:      "Total number of DOCX documents rendered.",
	},
	[]string{"kind"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheLookupsTotal counts result-cache lookups.
// Label:
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of AI result cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── Archive metrics ───────────────────────────────────────────────────────────

// ArchiveQueueDepth tracks the number of generation records waiting in each
// archive worker channel.
var ArchiveQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "archive_queue_depth",
		Help:      "Current number of generation records pending in each archive worker channel.",
	},
	[]string{"worker_id"},
)

// ArchiveErrorsTotal counts generation records that failed to persist.
var ArchiveErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "archive_errors_total",
		Help:      "Total number of generation records that failed to persist.",
	},
)
