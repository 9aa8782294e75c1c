// Package metrics defines and registers all custom Prometheus metrics for the
// realty platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time, before
// the HTTP server starts serving /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "realty"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionLoginsTotal counts successful session starts.
// Label:
//   - method: "password", "register" or "guest"
var SessionLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_logins_total",
		Help:      "Total number of sessions started, by sign-in method.",
	},
	[]string{"method"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// ListingsCreatedTotal counts newly created listings.
// Label:
//   - property_type: "apartment", "villa", "land" or "commercial"
var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of listings created, by property type.",
	},
	[]string{"property_type"},
)

// ListingFetchesTotal counts full listing refreshes.
// Label:
//   - mode: "live" or "simulated"
var ListingFetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_fetches_total",
		Help:      "Total number of listing refreshes served, by backend mode.",
	},
	[]string{"mode"},
)

// UploadsTotal counts image upload attempts.
// Label:
//   - result: "ok" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of listing image uploads, by result.",
	},
	[]string{"result"},
)

// ── Tool metrics ──────────────────────────────────────────────────────────────

// ContractsRenderedTotal counts contract documents rendered.
// Label:
//   - template: the template id (e.g. "sale_v1")
var ContractsRenderedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contracts_rendered_total",
		Help:      "Total number of contract documents rendered, by template.",
	},
	[]string{"template"},
)

// WatermarksAppliedTotal counts watermarked images produced.
var WatermarksAppliedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watermarks_applied_total",
		Help:      "Total number of images watermarked.",
	},
)
