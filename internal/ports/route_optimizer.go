package ports

import (
	"birding-trip-service/internal/domain"
	"context"
)

// Options controlling how much reordering the optimizer may do.
type OptimizeOptions struct {
	RoundTrip bool
	// FixFirst pins the first waypoint (trip start) in place.
	FixFirst bool
	// FixLast pins the last waypoint (trip end); false for round trips.
	FixLast bool
}

// Contract for the external trip-optimization collaborator. The optimizer
// may reorder all non-fixed waypoints to minimize total travel time.
// A (nil, nil) return signals "could not optimize", not a hard error;
// callers fall back to a SequentialRouter.
type RouteOptimizer interface {
	Optimize(ctx context.Context, waypoints []domain.Waypoint, opts OptimizeOptions) (*domain.RouteResult, error)
}

// Contract for the fallback routing collaborator. It preserves input order
// and only computes leg distances and durations.
type SequentialRouter interface {
	RouteInOrder(ctx context.Context, waypoints []domain.Waypoint) (*domain.RouteResult, error)
}
