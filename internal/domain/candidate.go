package domain

// Represents a candidate birding location considered for a trip.
// ObservationScore summarizes recent species-observation richness at the
// location. Address is filled in by the enrichment phase and may stay empty
// when reverse geocoding failed; downstream code must treat it as optional.
type Candidate struct {
	ID               string
	Name             string
	Coordinates      Coordinates
	ObservationScore int
	Address          string
}

// ScoringPolicy selects the weighting applied when scoring candidates.
type ScoringPolicy string

const (
	// PolicySpecies favors observation-rich locations over nearby ones.
	PolicySpecies ScoringPolicy = "species"
	// PolicyDistance favors locations close to the trip start.
	PolicyDistance ScoringPolicy = "distance"
	// PolicyBalanced weighs both axes equally.
	PolicyBalanced ScoringPolicy = "balanced"
)

// Valid reports whether p is one of the defined policies.
func (p ScoringPolicy) Valid() bool {
	switch p {
	case PolicySpecies, PolicyDistance, PolicyBalanced:
		return true
	}
	return false
}

// A Candidate annotated with its distance from the trip start and the
// desirability score computed for the active policy. Higher scores are
// always better regardless of policy.
type ScoredCandidate struct {
	Candidate
	DistanceFromStartKm float64
	Score               float64
}
