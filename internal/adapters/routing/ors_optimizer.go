package routing

import (
	"birding-trip-service/internal/adapters/orsclient"
	"birding-trip-service/internal/domain"
	"birding-trip-service/internal/platform/obs"
	"birding-trip-service/internal/ports"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// ORSRouteOptimizer implements the RouteOptimizer port using the
// OpenRouteService /optimization endpoint (VROOM). The endpoint solves the
// stop-ordering problem; this adapter only translates between waypoints and
// the provider's job/vehicle model and normalizes the answer into a
// RouteResult.
//
// A response this adapter cannot turn into a usable route yields (nil, nil):
// "could not optimize" is a fallback signal, not a hard error.
type ORSRouteOptimizer struct {
	client  *orsclient.Client
	profile string
}

func NewORSRouteOptimizer(client *orsclient.Client, profile string) *ORSRouteOptimizer {
	if profile == "" {
		profile = "driving-car"
	}
	return &ORSRouteOptimizer{client: client, profile: profile}
}

type optimizationJob struct {
	ID       int       `json:"id"`
	Location []float64 `json:"location"`
}

type optimizationVehicle struct {
	ID      int       `json:"id"`
	Profile string    `json:"profile"`
	Start   []float64 `json:"start"`
	End     []float64 `json:"end,omitempty"`
}

type optimizationRequest struct {
	Jobs     []optimizationJob     `json:"jobs"`
	Vehicles []optimizationVehicle `json:"vehicles"`
	Options  struct {
		Geometry bool `json:"g"`
	} `json:"options"`
}

type optimizationResponse struct {
	Unassigned []struct {
		ID int `json:"id"`
	} `json:"unassigned"`
	Routes []struct {
		Geometry string `json:"geometry"`
		Steps    []struct {
			Type     string  `json:"type"`
			Job      int     `json:"job"`
			Duration float64 `json:"duration"`
			Distance float64 `json:"distance"`
		} `json:"steps"`
	} `json:"routes"`
}

// Optimize asks the provider for a reordered route over the given waypoints.
// The first waypoint is always fixed (vehicle start); the last is fixed as
// the vehicle end unless the trip is a round trip, in which case the vehicle
// returns to the start and no explicit end waypoint appears in the result.
func (o *ORSRouteOptimizer) Optimize(
	ctx context.Context,
	waypoints []domain.Waypoint,
	opts ports.OptimizeOptions,
) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "ors.Optimize")(&err)

	if len(waypoints) < 2 {
		return nil, fmt.Errorf("optimize: need at least 2 waypoints, got %d", len(waypoints))
	}

	start := waypoints[0]
	stopEnd := len(waypoints)
	var end *domain.Waypoint
	if !opts.RoundTrip {
		end = &waypoints[len(waypoints)-1]
		stopEnd--
	}

	var reqBody optimizationRequest
	// Job ids are waypoint indices so the response order maps back directly.
	for i := 1; i < stopEnd; i++ {
		reqBody.Jobs = append(reqBody.Jobs, optimizationJob{
			ID:       i,
			Location: waypoints[i].Coordinates.LngLatToList(),
		})
	}

	vehicle := optimizationVehicle{
		ID:      1,
		Profile: o.profile,
		Start:   start.Coordinates.LngLatToList(),
	}
	if opts.RoundTrip {
		vehicle.End = start.Coordinates.LngLatToList()
	} else if opts.FixLast && end != nil {
		vehicle.End = end.Coordinates.LngLatToList()
	}
	reqBody.Vehicles = []optimizationVehicle{vehicle}
	reqBody.Options.Geometry = true

	if len(reqBody.Jobs) == 0 {
		// Nothing to reorder; let the sequential router handle it.
		return nil, nil
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal optimization request: %w", err)
	}

	endpoint := o.client.BaseURL + "/optimization"
	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return o.client.NewRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("optimization request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded optimizationResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode optimization response: %w", err)
	}

	// Partial assignments cannot produce a complete itinerary; treat them
	// as "could not optimize" so the sequential path still covers all stops.
	if len(decoded.Routes) != 1 || len(decoded.Unassigned) > 0 {
		log.Printf("optimizer returned unusable solution: routes=%d unassigned=%d",
			len(decoded.Routes), len(decoded.Unassigned))
		return nil, nil
	}

	return o.normalize(waypoints, opts, decoded)
}

// normalize converts the provider's step list into the common leg/stop shape.
func (o *ORSRouteOptimizer) normalize(
	waypoints []domain.Waypoint,
	opts ports.OptimizeOptions,
	decoded optimizationResponse,
) (*domain.RouteResult, error) {
	route := decoded.Routes[0]

	ordered := []domain.Waypoint{waypoints[0]}
	// Cumulative travel metrics at each retained step, for leg deltas.
	cumDuration := []float64{0}
	cumDistance := []float64{0}

	for _, step := range route.Steps {
		switch step.Type {
		case "job":
			if step.Job < 1 || step.Job >= len(waypoints) {
				return nil, fmt.Errorf("optimization step references unknown job %d", step.Job)
			}
			ordered = append(ordered, waypoints[step.Job])
			cumDuration = append(cumDuration, step.Duration)
			cumDistance = append(cumDistance, step.Distance)
		case "end":
			if opts.RoundTrip {
				// The vehicle's return to start is not part of the
				// normalized waypoint list.
				continue
			}
			ordered = append(ordered, waypoints[len(waypoints)-1])
			cumDuration = append(cumDuration, step.Duration)
			cumDistance = append(cumDistance, step.Distance)
		}
	}

	legs := make([]domain.RouteLeg, 0, len(ordered)-1)
	totalDistanceKm := 0.0
	totalDurationSec := 0.0
	for i := 1; i < len(ordered); i++ {
		distanceKm := (cumDistance[i] - cumDistance[i-1]) / 1000
		if distanceKm <= 0 {
			// Providers omit step distances unless geometry is requested;
			// estimate from the great-circle distance when absent.
			distanceKm = ordered[i-1].Coordinates.DistanceKm(ordered[i].Coordinates)
		}
		leg := domain.RouteLeg{
			FromIndex:   i - 1,
			ToIndex:     i,
			DistanceKm:  distanceKm,
			DurationSec: cumDuration[i] - cumDuration[i-1],
		}
		legs = append(legs, leg)
		totalDistanceKm += leg.DistanceKm
		totalDurationSec += leg.DurationSec
	}

	return &domain.RouteResult{
		OrderedWaypoints: ordered,
		Legs:             legs,
		TotalDistanceKm:  totalDistanceKm,
		TotalDurationSec: totalDurationSec,
		Geometry:         route.Geometry,
	}, nil
}
