package routing

import (
	"birding-trip-service/internal/adapters/orsclient"
	"birding-trip-service/internal/domain"
	"birding-trip-service/internal/ports"
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func optimizerFixture(t *testing.T, response string) *ORSRouteOptimizer {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/optimization" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	client, err := orsclient.New("test-key", srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return NewORSRouteOptimizer(client, "driving-car")
}

func TestORSOptimizerReordersStops(t *testing.T) {
	// Steps visit job 2 before job 1; cumulative metrics become leg deltas.
	opt := optimizerFixture(t, `{
		"routes": [{
			"geometry": "poly",
			"steps": [
				{"type": "start", "duration": 0, "distance": 0},
				{"type": "job", "job": 2, "duration": 300, "distance": 4000},
				{"type": "job", "job": 1, "duration": 700, "distance": 9000},
				{"type": "end", "duration": 1000, "distance": 13000}
			]
		}]
	}`)

	waypoints := []domain.Waypoint{
		{Name: "home", Kind: domain.WaypointStart, Coordinates: domain.Coordinates{Lat: 40, Lng: -75}},
		{Name: "near", Kind: domain.WaypointStop, Coordinates: domain.Coordinates{Lat: 40.1, Lng: -75}},
		{Name: "far", Kind: domain.WaypointStop, Coordinates: domain.Coordinates{Lat: 40.2, Lng: -75}},
		{Name: "lodge", Kind: domain.WaypointEnd, Coordinates: domain.Coordinates{Lat: 40.3, Lng: -75}},
	}

	res, err := opt.Optimize(context.Background(), waypoints, ports.OptimizeOptions{FixFirst: true, FixLast: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil {
		t.Fatal("expected a route")
	}

	gotOrder := make([]string, 0, len(res.OrderedWaypoints))
	for _, wp := range res.OrderedWaypoints {
		gotOrder = append(gotOrder, wp.Name)
	}
	want := []string{"home", "far", "near", "lodge"}
	for i := range want {
		if gotOrder[i] != want[i] {
			t.Fatalf("order = %v, want %v", gotOrder, want)
		}
	}

	if len(res.Legs) != 3 {
		t.Fatalf("legs = %d, want 3", len(res.Legs))
	}
	if res.Legs[0].DurationSec != 300 || math.Abs(res.Legs[0].DistanceKm-4) > 1e-9 {
		t.Errorf("leg 0 = %+v", res.Legs[0])
	}
	if res.Legs[1].DurationSec != 400 || math.Abs(res.Legs[1].DistanceKm-5) > 1e-9 {
		t.Errorf("leg 1 = %+v", res.Legs[1])
	}
	if res.TotalDurationSec != 1000 {
		t.Errorf("total duration = %f, want 1000", res.TotalDurationSec)
	}
}

func TestORSOptimizerRoundTripDropsReturnLeg(t *testing.T) {
	opt := optimizerFixture(t, `{
		"routes": [{
			"steps": [
				{"type": "start", "duration": 0, "distance": 0},
				{"type": "job", "job": 1, "duration": 300, "distance": 4000},
				{"type": "job", "job": 2, "duration": 700, "distance": 9000},
				{"type": "end", "duration": 1000, "distance": 13000}
			]
		}]
	}`)

	waypoints := []domain.Waypoint{
		{Name: "home", Kind: domain.WaypointStart, Coordinates: domain.Coordinates{Lat: 40, Lng: -75}},
		{Name: "a", Kind: domain.WaypointStop, Coordinates: domain.Coordinates{Lat: 40.1, Lng: -75}},
		{Name: "b", Kind: domain.WaypointStop, Coordinates: domain.Coordinates{Lat: 40.2, Lng: -75}},
	}

	res, err := opt.Optimize(context.Background(), waypoints, ports.OptimizeOptions{RoundTrip: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil {
		t.Fatal("expected a route")
	}

	if len(res.OrderedWaypoints) != 3 {
		t.Fatalf("waypoints = %d, want 3 (no synthetic return)", len(res.OrderedWaypoints))
	}
	if len(res.Legs) != 2 {
		t.Fatalf("legs = %d, want 2", len(res.Legs))
	}
	if res.TotalDurationSec != 700 {
		t.Errorf("total duration = %f, want 700 without the return leg", res.TotalDurationSec)
	}
}

func TestORSOptimizerUnassignedMeansFallback(t *testing.T) {
	opt := optimizerFixture(t, `{
		"unassigned": [{"id": 2}],
		"routes": [{
			"steps": [
				{"type": "start", "duration": 0, "distance": 0},
				{"type": "job", "job": 1, "duration": 300, "distance": 4000}
			]
		}]
	}`)

	waypoints := []domain.Waypoint{
		{Kind: domain.WaypointStart, Coordinates: domain.Coordinates{Lat: 40, Lng: -75}},
		{Kind: domain.WaypointStop, Coordinates: domain.Coordinates{Lat: 40.1, Lng: -75}},
		{Kind: domain.WaypointStop, Coordinates: domain.Coordinates{Lat: 40.2, Lng: -75}},
	}

	res, err := opt.Optimize(context.Background(), waypoints, ports.OptimizeOptions{RoundTrip: true})
	if err != nil {
		t.Fatalf("unassigned jobs must not be a hard error, got %v", err)
	}
	if res != nil {
		t.Fatal("unassigned jobs must signal fallback with a nil route")
	}
}
