package dto

import "time"

type PointRequest struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

type CandidateRequest struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	ObservationScore int     `json:"observation_score"`
}

type PlanRequest struct {
	Start PointRequest `json:"start"`
	// End may be omitted: the trip is then a round trip back to start.
	End *PointRequest `json:"end"`
	// Candidates overrides the stored hotspot list when non-empty.
	Candidates []CandidateRequest `json:"candidates"`
	MaxStops   int                `json:"max_stops"`
	Policy     string             `json:"policy"`
	TripStart  *time.Time         `json:"trip_start"`
}

type ScheduledStopResponse struct {
	Name                  string     `json:"name"`
	Kind                  string     `json:"kind"`
	Lat                   float64    `json:"lat"`
	Lng                   float64    `json:"lng"`
	Address               string     `json:"address,omitempty"`
	ObservationScore      *int       `json:"observation_score,omitempty"`
	ArrivalTime           *time.Time `json:"arrival_time,omitempty"`
	SuggestedVisitMinutes int        `json:"suggested_visit_minutes"`
	DepartureTime         *time.Time `json:"departure_time,omitempty"`
}

type RouteLegResponse struct {
	FromIndex   int     `json:"from_index"`
	ToIndex     int     `json:"to_index"`
	DistanceKm  float64 `json:"distance_km"`
	DurationSec float64 `json:"duration_sec"`
}

type ItinerarySummaryResponse struct {
	TotalStops         int     `json:"total_stops"`
	TotalDistanceKm    float64 `json:"total_distance_km"`
	TotalTravelMinutes float64 `json:"total_travel_minutes"`
	TotalVisitMinutes  int     `json:"total_visit_minutes"`
	TotalTripMinutes   float64 `json:"total_trip_minutes"`
}

type ItineraryResponse struct {
	ID      string                   `json:"id"`
	Stops   []ScheduledStopResponse  `json:"stops"`
	Legs    []RouteLegResponse       `json:"legs"`
	Summary ItinerarySummaryResponse `json:"summary"`
}
