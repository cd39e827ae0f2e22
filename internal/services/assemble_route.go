package services

import (
	"birding-trip-service/internal/domain"
	"birding-trip-service/internal/metrics"
	"birding-trip-service/internal/platform/obs"
	"birding-trip-service/internal/ports"
	"context"
	"fmt"
	"log"
)

// AssembleRoute turns start, selected stops, and end into an ordered route.
//
// The waypoint list is [start, stops..., end]; the explicit end waypoint is
// omitted for round trips (start and end coincide). The optimizer may reorder
// everything except the fixed start (and fixed end when not a round trip);
// reimplementing that optimization locally is out of scope. When the
// optimizer cannot produce a route the sequential collaborator computes legs
// in the given order, which is a valid (if sub-optimal) output rather than an
// error. Only when both collaborators fail does this return
// ErrRoutingUnavailable.
func AssembleRoute(
	ctx context.Context,
	start domain.Waypoint,
	stops []domain.ScoredCandidate,
	end domain.Waypoint,
	roundTrip bool,
	optimizer ports.RouteOptimizer,
	fallback ports.SequentialRouter,
) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "route.Assemble")(&err)

	waypoints := make([]domain.Waypoint, 0, len(stops)+2)
	waypoints = append(waypoints, start)
	for i := range stops {
		c := stops[i].Candidate
		waypoints = append(waypoints, domain.Waypoint{
			Coordinates: c.Coordinates,
			Name:        c.Name,
			Kind:        domain.WaypointStop,
			Candidate:   &stops[i].Candidate,
		})
	}
	if !roundTrip {
		waypoints = append(waypoints, end)
	}

	opts := ports.OptimizeOptions{
		RoundTrip: roundTrip,
		FixFirst:  true,
		FixLast:   !roundTrip,
	}

	var optimizeErr error
	if optimizer != nil {
		route, err := optimizer.Optimize(ctx, waypoints, opts)
		if err != nil {
			optimizeErr = err
			log.Printf("route optimization failed, falling back to sequential routing: %v", err)
		} else if route != nil {
			route.Optimized = true
			if err := validateRoute(route); err != nil {
				return nil, fmt.Errorf("assemble route: optimizer result: %w", err)
			}
			return route, nil
		}
	}

	if fallback == nil {
		return nil, fmt.Errorf("%w: no fallback router configured", ErrRoutingUnavailable)
	}

	route, err := fallback.RouteInOrder(ctx, waypoints)
	if err != nil || route == nil {
		if optimizeErr != nil {
			return nil, fmt.Errorf("%w: optimize: %v; sequential: %v", ErrRoutingUnavailable, optimizeErr, err)
		}
		return nil, fmt.Errorf("%w: sequential: %v", ErrRoutingUnavailable, err)
	}

	route.Optimized = false
	if err := validateRoute(route); err != nil {
		return nil, fmt.Errorf("assemble route: sequential result: %w", err)
	}
	metrics.RoutingFallbacks.Inc()
	return route, nil
}

// validateRoute enforces the leg/waypoint shape shared by both routing paths.
func validateRoute(r *domain.RouteResult) error {
	if len(r.OrderedWaypoints) == 0 {
		return fmt.Errorf("route has no waypoints")
	}
	if len(r.Legs) != len(r.OrderedWaypoints)-1 {
		return fmt.Errorf(
			"route shape mismatch: %d legs for %d waypoints",
			len(r.Legs), len(r.OrderedWaypoints),
		)
	}
	return nil
}
