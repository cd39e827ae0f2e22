package routing

import (
	"birding-trip-service/internal/adapters/orsclient"
	"birding-trip-service/internal/domain"
	"birding-trip-service/internal/platform/obs"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ORSSequentialRouter implements the SequentialRouter port using the
// OpenRouteService directions endpoint. It never reorders: waypoints are
// visited exactly in the given order and only leg distances and durations
// are computed.
type ORSSequentialRouter struct {
	client  *orsclient.Client
	profile string
}

func NewORSSequentialRouter(client *orsclient.Client, profile string) *ORSSequentialRouter {
	if profile == "" {
		profile = "driving-car"
	}
	return &ORSSequentialRouter{client: client, profile: profile}
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Geometry string `json:"geometry"`
		Segments []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"segments"`
	} `json:"routes"`
}

// RouteInOrder computes legs between consecutive waypoints in input order.
func (o *ORSSequentialRouter) RouteInOrder(
	ctx context.Context,
	waypoints []domain.Waypoint,
) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "ors.RouteInOrder")(&err)

	if len(waypoints) < 2 {
		return nil, fmt.Errorf("route in order: need at least 2 waypoints, got %d", len(waypoints))
	}

	coords := make([][]float64, 0, len(waypoints))
	for _, wp := range waypoints {
		coords = append(coords, wp.Coordinates.LngLatToList())
	}

	payload, err := json.Marshal(directionsRequest{Coordinates: coords})
	if err != nil {
		return nil, fmt.Errorf("marshal directions request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.client.BaseURL, o.profile)
	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return o.client.NewRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Routes) != 1 {
		return nil, fmt.Errorf("expected 1 route, got %d", len(decoded.Routes))
	}

	route := decoded.Routes[0]
	if len(route.Segments) != len(waypoints)-1 {
		return nil, fmt.Errorf(
			"segment count does not match waypoints: segments=%d waypoints=%d",
			len(route.Segments), len(waypoints),
		)
	}

	legs := make([]domain.RouteLeg, 0, len(route.Segments))
	totalDistanceKm := 0.0
	totalDurationSec := 0.0
	for i, seg := range route.Segments {
		leg := domain.RouteLeg{
			FromIndex:   i,
			ToIndex:     i + 1,
			DistanceKm:  seg.Distance / 1000,
			DurationSec: seg.Duration,
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
		Geometry:         route.Geometry,
	}, nil
}
