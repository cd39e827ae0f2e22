package services

import (
	"birding-trip-service/internal/domain"
	"testing"
	"time"
)

func routeFixture(kinds []domain.WaypointKind, scores []int, legDurations []float64) *domain.RouteResult {
	waypoints := make([]domain.Waypoint, 0, len(kinds))
	for i, k := range kinds {
		wp := domain.Waypoint{Name: string(rune('A' + i)), Kind: k}
		if k == domain.WaypointStop {
			wp.Candidate = &domain.Candidate{ID: wp.Name, ObservationScore: scores[i]}
		}
		waypoints = append(waypoints, wp)
	}

	legs := make([]domain.RouteLeg, 0, len(legDurations))
	for i, d := range legDurations {
		legs = append(legs, domain.RouteLeg{FromIndex: i, ToIndex: i + 1, DurationSec: d})
	}

	return &domain.RouteResult{OrderedWaypoints: waypoints, Legs: legs}
}

func TestDefaultVisitTime(t *testing.T) {
	cases := []struct {
		score int
		want  int
	}{
		{0, 30},
		{1, 31},
		{10, 31},
		{11, 32},
		{50, 35},
		{100, 40},
	}
	for _, tc := range cases {
		if got := DefaultVisitTime(tc.score); got != tc.want {
			t.Errorf("DefaultVisitTime(%d) = %d, want %d", tc.score, got, tc.want)
		}
	}
}

func TestBuildScheduleFromTripStart(t *testing.T) {
	tripStart := time.Date(2026, 5, 10, 6, 0, 0, 0, time.UTC)
	route := routeFixture(
		[]domain.WaypointKind{domain.WaypointStart, domain.WaypointStop, domain.WaypointEnd},
		[]int{0, 0, 0},
		[]float64{600, 300},
	)

	stops := BuildSchedule(route, tripStart, nil)
	if len(stops) != 3 {
		t.Fatalf("expected 3 scheduled stops, got %d", len(stops))
	}

	// Trip start: no arrival, departs at tripStart, no dwell.
	if stops[0].ArrivalTime != nil {
		t.Error("trip start must have no arrival time")
	}
	if stops[0].DepartureTime == nil || !stops[0].DepartureTime.Equal(tripStart) {
		t.Errorf("trip start departure = %v, want %v", stops[0].DepartureTime, tripStart)
	}
	if stops[0].SuggestedVisitMinutes != 0 {
		t.Errorf("trip start dwell = %d, want 0", stops[0].SuggestedVisitMinutes)
	}

	// Stop: arrives after the 600s leg, dwells 30 minutes (score 0).
	wantArrival := tripStart.Add(600 * time.Second)
	if stops[1].ArrivalTime == nil || !stops[1].ArrivalTime.Equal(wantArrival) {
		t.Errorf("stop arrival = %v, want %v", stops[1].ArrivalTime, wantArrival)
	}
	wantDeparture := wantArrival.Add(30 * time.Minute)
	if stops[1].DepartureTime == nil || !stops[1].DepartureTime.Equal(wantDeparture) {
		t.Errorf("stop departure = %v, want %v", stops[1].DepartureTime, wantDeparture)
	}

	// End: arrives after the 300s leg, zero dwell, no departure.
	wantEnd := wantDeparture.Add(300 * time.Second)
	if stops[2].ArrivalTime == nil || !stops[2].ArrivalTime.Equal(wantEnd) {
		t.Errorf("end arrival = %v, want %v", stops[2].ArrivalTime, wantEnd)
	}
	if stops[2].DepartureTime != nil {
		t.Error("terminal waypoint must have no departure time")
	}
	if stops[2].SuggestedVisitMinutes != 0 {
		t.Errorf("end dwell = %d, want 0", stops[2].SuggestedVisitMinutes)
	}
}

func TestBuildScheduleAccumulatesDwellAndTravel(t *testing.T) {
	// Three stops with legs of 600s and 300s: each arrival is the previous
	// departure plus the connecting leg.
	tripStart := time.Date(2026, 5, 10, 6, 0, 0, 0, time.UTC)
	route := routeFixture(
		[]domain.WaypointKind{domain.WaypointStop, domain.WaypointStop, domain.WaypointStop},
		[]int{0, 0, 0},
		[]float64{600, 300},
	)

	stops := BuildSchedule(route, tripStart, nil)

	dwell := 30 * time.Minute
	wantArrival2 := tripStart.Add(dwell).Add(600 * time.Second)
	if !stops[1].ArrivalTime.Equal(wantArrival2) {
		t.Errorf("stop 2 arrival = %v, want %v", stops[1].ArrivalTime, wantArrival2)
	}

	wantArrival3 := wantArrival2.Add(dwell).Add(300 * time.Second)
	if !stops[2].ArrivalTime.Equal(wantArrival3) {
		t.Errorf("stop 3 arrival = %v, want %v", stops[2].ArrivalTime, wantArrival3)
	}
}

func TestBuildScheduleCustomVisitTime(t *testing.T) {
	tripStart := time.Date(2026, 5, 10, 6, 0, 0, 0, time.UTC)
	route := routeFixture(
		[]domain.WaypointKind{domain.WaypointStart, domain.WaypointStop, domain.WaypointEnd},
		[]int{0, 80, 0},
		[]float64{60, 60},
	)

	stops := BuildSchedule(route, tripStart, func(score int) int { return score / 2 })
	if stops[1].SuggestedVisitMinutes != 40 {
		t.Fatalf("custom dwell = %d, want 40", stops[1].SuggestedVisitMinutes)
	}
}

func TestBuildScheduleDeterministic(t *testing.T) {
	tripStart := time.Date(2026, 5, 10, 6, 0, 0, 0, time.UTC)
	route := routeFixture(
		[]domain.WaypointKind{domain.WaypointStart, domain.WaypointStop, domain.WaypointStop},
		[]int{0, 25, 60},
		[]float64{450, 900},
	)

	a := BuildSchedule(route, tripStart, nil)
	b := BuildSchedule(route, tripStart, nil)

	for i := range a {
		if !timesEqual(a[i].ArrivalTime, b[i].ArrivalTime) || !timesEqual(a[i].DepartureTime, b[i].DepartureTime) {
			t.Fatalf("schedule not reproducible at stop %d", i)
		}
	}
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
