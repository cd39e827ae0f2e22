package domain

import "time"

// Represents a waypoint with its scheduled visit window.
// ArrivalTime is nil only for the trip start; DepartureTime is nil only for
// the terminal waypoint.
type ScheduledStop struct {
	Waypoint
	ArrivalTime           *time.Time
	SuggestedVisitMinutes int
	DepartureTime         *time.Time
}

// Aggregate totals for a planned itinerary.
type ItinerarySummary struct {
	TotalStops         int
	TotalDistanceKm    float64
	TotalTravelMinutes float64
	TotalVisitMinutes  int
	TotalTripMinutes   float64
}

// Represents the complete output of a planning request.
// An Itinerary is immutable once returned; a later re-plan supersedes it
// rather than mutating it.
type Itinerary struct {
	ID      string
	Stops   []ScheduledStop
	Legs    []RouteLeg
	Summary ItinerarySummary
}
