package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// GeocodeLookups counts reverse-geocoding outcomes.
	GeocodeLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "geocode_lookups_total", Help: "Reverse geocode lookups by outcome."},
		[]string{"outcome"},
	)
	// AddressCacheLookups counts address cache hits and misses.
	AddressCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "address_cache_lookups_total", Help: "Address cache lookups by outcome."},
		[]string{"outcome"},
	)
	// PlansBuilt counts planning attempts by result.
	PlansBuilt = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "itineraries_planned_total", Help: "Itinerary planning attempts by result."},
		[]string{"result"},
	)
	// RoutingFallbacks counts how often the sequential fallback produced the
	// route instead of the optimizer.
	RoutingFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "routing_fallbacks_total", Help: "Routes built by the sequential fallback."},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(GeocodeLookups)
		Registry.MustRegister(AddressCacheLookups)
		Registry.MustRegister(PlansBuilt)
		Registry.MustRegister(RoutingFallbacks)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
