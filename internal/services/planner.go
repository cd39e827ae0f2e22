package services

import (
	"birding-trip-service/internal/domain"
	"birding-trip-service/internal/platform/obs"
	"birding-trip-service/internal/ports"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProgressFn receives coarse-grained planning milestones. Purely
// observational: no return value is consumed.
type ProgressFn func(message string, percent int)

type PlanItineraryRequest struct {
	Start      domain.Coordinates
	StartName  string
	End        domain.Coordinates
	EndName    string
	Candidates []*domain.Candidate
	MaxStops   int
	Policy     domain.ScoringPolicy
	TripStart  time.Time
	// VisitTime overrides the default dwell heuristic when non-nil.
	VisitTime VisitTimeFn
	// OnProgress is optional.
	OnProgress ProgressFn
}

// PlanItinerary composes scoring, selection, route assembly, and scheduling
// into the end-to-end planning operation.
//
// The steps run strictly in sequence since each consumes the previous step's
// output. Either a complete, internally consistent Itinerary is returned or
// none is: one terminal error per planning attempt, never a partial result.
func PlanItinerary(
	ctx context.Context,
	req PlanItineraryRequest,
	optimizer ports.RouteOptimizer,
	fallback ports.SequentialRouter,
) (_ *domain.Itinerary, err error) {
	defer obs.Time(ctx, "planner.PlanItinerary")(&err)

	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	policy := req.Policy
	if !policy.Valid() {
		policy = domain.PolicyBalanced
	}

	progress := req.OnProgress
	if progress == nil {
		progress = func(string, int) {}
	}

	// Start and end are the same location only on an exact coordinate match.
	roundTrip := req.Start.Equal(req.End)

	progress("scoring candidate locations", 10)
	scored := ScoreCandidates(req.Candidates, req.Start, policy)

	selected := SelectStops(scored, req.MaxStops)
	progress(fmt.Sprintf("selected %d stops", len(selected)), 25)

	start := domain.Waypoint{
		Coordinates: req.Start,
		Name:        req.StartName,
		Kind:        domain.WaypointStart,
	}
	end := domain.Waypoint{
		Coordinates: req.End,
		Name:        req.EndName,
		Kind:        domain.WaypointEnd,
	}

	route, err := AssembleRoute(ctx, start, selected, end, roundTrip, optimizer, fallback)
	if err != nil {
		return nil, fmt.Errorf("plan itinerary: %w", err)
	}
	progress("route calculated", 70)

	stops := BuildSchedule(route, req.TripStart, req.VisitTime)
	progress("schedule built", 90)

	summary := summarize(route, stops)
	progress("itinerary ready", 100)

	return &domain.Itinerary{
		ID:      uuid.NewString(),
		Stops:   stops,
		Legs:    route.Legs,
		Summary: summary,
	}, nil
}

func summarize(route *domain.RouteResult, stops []domain.ScheduledStop) domain.ItinerarySummary {
	travelSec := 0.0
	for _, leg := range route.Legs {
		travelSec += leg.DurationSec
	}

	visitMinutes := 0
	totalStops := 0
	for _, s := range stops {
		if s.Kind == domain.WaypointStop {
			totalStops++
			visitMinutes += s.SuggestedVisitMinutes
		}
	}

	travelMinutes := travelSec / 60
	return domain.ItinerarySummary{
		TotalStops:         totalStops,
		TotalDistanceKm:    route.TotalDistanceKm,
		TotalTravelMinutes: travelMinutes,
		TotalVisitMinutes:  visitMinutes,
		TotalTripMinutes:   travelMinutes + float64(visitMinutes),
	}
}
