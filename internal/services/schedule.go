package services

import (
	"birding-trip-service/internal/domain"
	"math"
	"time"
)

// VisitTimeFn maps a stop's observation score to suggested dwell minutes.
type VisitTimeFn func(observationScore int) int

// DefaultVisitTime is the dwell heuristic used unless the caller supplies
// another: a 30 minute base plus a small bonus for richer stops. The formula
// is a tunable product heuristic, not load-bearing, which is why it stays
// swappable.
func DefaultVisitTime(observationScore int) int {
	return 30 + int(math.Ceil(float64(observationScore)/10))
}

// BuildSchedule walks the route in final order and produces concrete
// arrival/departure timestamps for every waypoint.
//
// The first waypoint is the trip start: it has no arrival time and departs at
// tripStart. Each later waypoint's arrival is the previous departure plus the
// connecting leg's travel time. Stop waypoints dwell for visitTime minutes;
// the terminal waypoint dwells zero and has no departure.
//
// Output is bit-for-bit reproducible for identical inputs: the only clock
// read is the supplied tripStart.
func BuildSchedule(route *domain.RouteResult, tripStart time.Time, visitTime VisitTimeFn) []domain.ScheduledStop {
	if visitTime == nil {
		visitTime = DefaultVisitTime
	}

	waypoints := route.OrderedWaypoints
	stops := make([]domain.ScheduledStop, 0, len(waypoints))

	current := tripStart
	for i, wp := range waypoints {
		stop := domain.ScheduledStop{Waypoint: wp}

		if i > 0 {
			current = current.Add(time.Duration(route.Legs[i-1].DurationSec * float64(time.Second)))
			arrival := current
			stop.ArrivalTime = &arrival
		}

		terminal := i == len(waypoints)-1
		if wp.Kind == domain.WaypointStop {
			score := 0
			if wp.Candidate != nil {
				score = wp.Candidate.ObservationScore
			}
			stop.SuggestedVisitMinutes = visitTime(score)
		}

		if !terminal {
			current = current.Add(time.Duration(stop.SuggestedVisitMinutes) * time.Minute)
			departure := current
			stop.DepartureTime = &departure
		}

		stops = append(stops, stop)
	}

	return stops
}
