package api

import (
	"birding-trip-service/internal/api/handlers"
	"birding-trip-service/internal/metrics"
	"birding-trip-service/internal/ports"
	"birding-trip-service/internal/services"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps carries everything the HTTP surface needs. Handlers stay
// unaware of concrete adapters: only ports cross this boundary.
type RouterDeps struct {
	Repo      ports.HotspotRepository
	Geocoder  ports.ReverseGeocoder
	Cache     ports.AddressCache
	Optimizer ports.RouteOptimizer
	Fallback  ports.SequentialRouter

	EnrichConfig    services.EnrichConfig
	DefaultMaxStops int
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root.
func NewRouter(deps RouterDeps) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	hotspotHandler := &handlers.HotspotHandler{Repo: deps.Repo}
	itineraryHandler := &handlers.ItineraryHandler{
		Repo:            deps.Repo,
		Geocoder:        deps.Geocoder,
		Cache:           deps.Cache,
		Optimizer:       deps.Optimizer,
		Fallback:        deps.Fallback,
		EnrichConfig:    deps.EnrichConfig,
		DefaultMaxStops: deps.DefaultMaxStops,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/hotspots", hotspotHandler.List)
	mux.HandleFunc("/itineraries", itineraryHandler.Plan)
	mux.HandleFunc("/itineraries/ws", itineraryHandler.PlanWS)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
