// Package metrics exposes Prometheus counters for the dashboard API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mediadrop"

var (
	// LoginAttempts counts POST /api/auth outcomes by result (ok, rejected, throttled).
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Login attempts by result.",
	}, []string{"result"})

	// Uploads counts accepted uploads.
	Uploads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Files written to the bucket.",
	})

	// UploadedBytes sums the payload size of accepted uploads.
	UploadedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploaded_bytes_total",
		Help:      "Bytes written to the bucket.",
	})

	// UploadsRejected counts uploads refused before reaching the bucket, by reason.
	UploadsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_rejected_total",
		Help:      "Uploads refused by validation or quota.",
	}, []string{"reason"})

	// Deletes counts deleted objects.
	Deletes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deletes_total",
		Help:      "Objects removed from the bucket.",
	})

	// EnrichmentDropped counts listing entries dropped because their metadata lookup failed.
	EnrichmentDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_enrichment_dropped_total",
		Help:      "Listing entries dropped after a failed metadata lookup.",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
