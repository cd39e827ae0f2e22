package handlers

import (
	"birding-trip-service/internal/api/dto"
	"birding-trip-service/internal/domain"
	"birding-trip-service/internal/metrics"
	"birding-trip-service/internal/ports"
	"birding-trip-service/internal/services"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ItineraryHandler orchestrates candidate enrichment and itinerary planning.
// It coordinates repository access, the rate-limited geocoding batch, and the
// routing collaborators.
type ItineraryHandler struct {
	Repo      ports.HotspotRepository
	Geocoder  ports.ReverseGeocoder
	Cache     ports.AddressCache
	Optimizer ports.RouteOptimizer
	Fallback  ports.SequentialRouter

	EnrichConfig    services.EnrichConfig
	DefaultMaxStops int
}

// Plan handles POST /itineraries.
func (h *ItineraryHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	itinerary, err := h.plan(r.Context(), req, nil)
	if err != nil {
		status, msg := planErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("plan itinerary failed: %v", err)
		}
		writeError(w, r, status, msg)
		return
	}

	writeJSON(w, r, http.StatusOK, toItineraryResponse(itinerary))
}

// plan runs the full enrich-then-plan pipeline shared by the HTTP and
// websocket surfaces.
func (h *ItineraryHandler) plan(
	ctx context.Context,
	req dto.PlanRequest,
	onProgress services.ProgressFn,
) (*domain.Itinerary, error) {
	candidates, err := h.resolveCandidates(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, services.ErrNoCandidates
	}

	// Address enrichment is best-effort: a failed batch only costs the
	// addresses, never the itinerary.
	enriched, err := services.EnrichAddresses(ctx, candidates, h.Geocoder, h.Cache, h.EnrichConfig)
	if err != nil {
		log.Printf("address enrichment failed, planning without addresses: %v", err)
		enriched = candidates
	}

	startName := strings.TrimSpace(req.Start.Name)
	if startName == "" {
		startName = "Trip start"
	}

	start := domain.Coordinates{Lat: req.Start.Lat, Lng: req.Start.Lng}
	end := start
	endName := startName
	if req.End != nil {
		end = domain.Coordinates{Lat: req.End.Lat, Lng: req.End.Lng}
		endName = strings.TrimSpace(req.End.Name)
		if endName == "" {
			endName = "Trip end"
		}
	}

	maxStops := req.MaxStops
	if maxStops <= 0 {
		maxStops = h.DefaultMaxStops
	}

	tripStart := time.Now()
	if req.TripStart != nil {
		tripStart = *req.TripStart
	}

	planReq := services.PlanItineraryRequest{
		Start:      start,
		StartName:  startName,
		End:        end,
		EndName:    endName,
		Candidates: enriched,
		MaxStops:   maxStops,
		Policy:     domain.ScoringPolicy(strings.ToLower(strings.TrimSpace(req.Policy))),
		TripStart:  tripStart,
		OnProgress: onProgress,
	}

	itinerary, err := services.PlanItinerary(ctx, planReq, h.Optimizer, h.Fallback)
	if err != nil {
		metrics.PlansBuilt.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.PlansBuilt.WithLabelValues("ok").Inc()

	return itinerary, nil
}

// resolveCandidates uses inline candidates when provided, otherwise the
// stored hotspot list.
func (h *ItineraryHandler) resolveCandidates(ctx context.Context, req dto.PlanRequest) ([]*domain.Candidate, error) {
	if len(req.Candidates) > 0 {
		out := make([]*domain.Candidate, 0, len(req.Candidates))
		for i, c := range req.Candidates {
			if c.ObservationScore < 0 {
				return nil, fmt.Errorf("%w: candidate %d has negative observation score", errBadRequest, i)
			}
			id := strings.TrimSpace(c.ID)
			if id == "" {
				id = fmt.Sprintf("inline-%d", i)
			}
			out = append(out, &domain.Candidate{
				ID:               id,
				Name:             c.Name,
				Coordinates:      domain.Coordinates{Lat: c.Lat, Lng: c.Lng},
				ObservationScore: c.ObservationScore,
			})
		}
		return out, nil
	}

	if h.Repo == nil {
		return nil, nil
	}
	hotspots, err := h.Repo.ListHotspots(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve candidates: %w", err)
	}
	return hotspots, nil
}

var errBadRequest = errors.New("bad request")

func planErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNoCandidates):
		return http.StatusBadRequest, "no candidate locations to plan with"
	case errors.Is(err, services.ErrRoutingUnavailable):
		return http.StatusBadGateway, "could not calculate route, try fewer stops"
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

func toItineraryResponse(it *domain.Itinerary) dto.ItineraryResponse {
	stops := make([]dto.ScheduledStopResponse, 0, len(it.Stops))
	for _, s := range it.Stops {
		stop := dto.ScheduledStopResponse{
			Name:                  s.Name,
			Kind:                  string(s.Kind),
			Lat:                   s.Coordinates.Lat,
			Lng:                   s.Coordinates.Lng,
			ArrivalTime:           s.ArrivalTime,
			SuggestedVisitMinutes: s.SuggestedVisitMinutes,
			DepartureTime:         s.DepartureTime,
		}
		if s.Candidate != nil {
			stop.Address = s.Candidate.Address
			score := s.Candidate.ObservationScore
			stop.ObservationScore = &score
		}
		stops = append(stops, stop)
	}

	legs := make([]dto.RouteLegResponse, 0, len(it.Legs))
	for _, l := range it.Legs {
		legs = append(legs, dto.RouteLegResponse{
			FromIndex:   l.FromIndex,
			ToIndex:     l.ToIndex,
			DistanceKm:  l.DistanceKm,
			DurationSec: l.DurationSec,
		})
	}

	return dto.ItineraryResponse{
		ID:    it.ID,
		Stops: stops,
		Legs:  legs,
		Summary: dto.ItinerarySummaryResponse{
			TotalStops:         it.Summary.TotalStops,
			TotalDistanceKm:    it.Summary.TotalDistanceKm,
			TotalTravelMinutes: it.Summary.TotalTravelMinutes,
			TotalVisitMinutes:  it.Summary.TotalVisitMinutes,
			TotalTripMinutes:   it.Summary.TotalTripMinutes,
		},
	}
}
