// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "barber_agenda"

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Bookings admitted by the ledger.",
	})

	BookingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_rejected_total",
		Help:      "Booking requests refused, by business reason.",
	}, []string{"reason"})

	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_cancelled_total",
		Help:      "Bookings moved to cancelled.",
	})

	SlotsSeeded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slots_seeded_total",
		Help:      "Slot rows created by lazy day seeding.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
