package domain

// WaypointKind distinguishes the synthetic trip endpoints from real stops.
type WaypointKind string

const (
	WaypointStart WaypointKind = "start"
	WaypointStop  WaypointKind = "stop"
	WaypointEnd   WaypointKind = "end"
)

// Represents a single point in a route. Start and End waypoints are
// synthetic, carry no Candidate payload, and are excluded from stop-count
// limits.
type Waypoint struct {
	Coordinates Coordinates
	Name        string
	Kind        WaypointKind
	Candidate   *Candidate
}

// Represents travel between two consecutive waypoints in final route order.
type RouteLeg struct {
	FromIndex   int
	ToIndex     int
	DistanceKm  float64
	DurationSec float64
}

// Represents a computed route regardless of which routing path produced it.
// Invariant: len(Legs) == len(OrderedWaypoints) - 1 for any non-empty route.
// Optimized records whether the order came from the optimizer or from the
// sequential fallback.
type RouteResult struct {
	OrderedWaypoints []Waypoint
	Legs             []RouteLeg
	TotalDistanceKm  float64
	TotalDurationSec float64
	Geometry         string
	Optimized        bool
}
