package routing

import (
	"birding-trip-service/internal/domain"
	"birding-trip-service/internal/ports"
	"context"
)

// MockRouter is a test double for both routing ports. Each call visits
// waypoints in input order with fixed per-leg metrics, or returns the
// configured error/nil result.
type MockRouter struct {
	LegDistanceKm  float64
	LegDurationSec float64

	OptimizeErr error
	// OptimizeNil makes Optimize signal "could not optimize".
	OptimizeNil       bool
	SequentialErr     error
	OptimizeCalls     int
	RouteInOrderCalls int
}

func (m *MockRouter) Optimize(
	ctx context.Context,
	waypoints []domain.Waypoint,
	opts ports.OptimizeOptions,
) (*domain.RouteResult, error) {
	m.OptimizeCalls++
	if m.OptimizeErr != nil {
		return nil, m.OptimizeErr
	}
	if m.OptimizeNil {
		return nil, nil
	}
	return m.build(waypoints), nil
}

func (m *MockRouter) RouteInOrder(
	ctx context.Context,
	waypoints []domain.Waypoint,
) (*domain.RouteResult, error) {
	m.RouteInOrderCalls++
	if m.SequentialErr != nil {
		return nil, m.SequentialErr
	}
	return m.build(waypoints), nil
}

func (m *MockRouter) build(waypoints []domain.Waypoint) *domain.RouteResult {
	legs := make([]domain.RouteLeg, 0, len(waypoints)-1)
	for i := 1; i < len(waypoints); i++ {
		legs = append(legs, domain.RouteLeg{
			FromIndex:   i - 1,
			ToIndex:     i,
			DistanceKm:  m.LegDistanceKm,
			DurationSec: m.LegDurationSec,
		})
	}
	return &domain.RouteResult{
		OrderedWaypoints: waypoints,
		Legs:             legs,
		TotalDistanceKm:  m.LegDistanceKm * float64(len(legs)),
		TotalDurationSec: m.LegDurationSec * float64(len(legs)),
	}
}
