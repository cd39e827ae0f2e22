package routing

import (
	"birding-trip-service/internal/domain"
	"context"
	"fmt"
)

// HaversineSequentialRouter is a local SequentialRouter that estimates legs
// from great-circle distances at an assumed average speed. It keeps the
// service usable without an ORS key (dev runs, tests) and is deterministic,
// but its durations are estimates, not road-network travel times.
type HaversineSequentialRouter struct {
	// AvgSpeedKmh defaults to 40 when zero.
	AvgSpeedKmh float64
}

func (h *HaversineSequentialRouter) RouteInOrder(
	ctx context.Context,
	waypoints []domain.Waypoint,
) (*domain.RouteResult, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("route in order: need at least 2 waypoints, got %d", len(waypoints))
	}

	speed := h.AvgSpeedKmh
	if speed <= 0 {
		speed = 40
	}

	legs := make([]domain.RouteLeg, 0, len(waypoints)-1)
	totalDistanceKm := 0.0
	totalDurationSec := 0.0
	for i := 1; i < len(waypoints); i++ {
		km := waypoints[i-1].Coordinates.DistanceKm(waypoints[i].Coordinates)
		leg := domain.RouteLeg{
			FromIndex:   i - 1,
			ToIndex:     i,
			DistanceKm:  km,
			DurationSec: km / speed * 3600,
		}
		legs = append(legs, leg)
		totalDistanceKm += leg.DistanceKm
		totalDurationSec += leg.DurationSec
	}

	return &domain.RouteResult{
		OrderedWaypoints: waypoints,
		Legs:             legs,
		TotalDistanceKm:  totalDistanceKm,
		TotalDurationSec: totalDurationSec,
	}, nil
}
