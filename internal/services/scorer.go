package services

import (
	"birding-trip-service/internal/domain"
)

// Weighting applied to the two scoring axes per policy. Observation richness
// and proximity always sum to 1 so scores stay comparable across policies.
const (
	speciesObsWeight  = 0.8
	distanceObsWeight = 0.2
	balancedObsWeight = 0.5
)

// ScoreCandidate assigns a desirability score to a candidate by normalizing
// its observation score and its (inverted) distance from the trip start
// against the batch maxima, then blending them with policy weights.
//
// When a batch maximum is zero, every candidate is identical on that axis and
// its normalized contribution is 1.0 for everyone, so the axis neither
// divides by zero nor distorts the blend.
//
// Pure and deterministic: identical inputs always produce identical scores.
func ScoreCandidate(
	c domain.Candidate,
	distanceFromStartKm float64,
	maxObservationScore int,
	maxDistanceKm float64,
	policy domain.ScoringPolicy,
) float64 {
	obsRatio := 1.0
	if maxObservationScore > 0 {
		obsRatio = float64(c.ObservationScore) / float64(maxObservationScore)
	}

	proximityRatio := 1.0
	if maxDistanceKm > 0 {
		proximityRatio = 1 - distanceFromStartKm/maxDistanceKm
	}

	obsWeight := balancedObsWeight
	switch policy {
	case domain.PolicySpecies:
		obsWeight = speciesObsWeight
	case domain.PolicyDistance:
		obsWeight = distanceObsWeight
	}

	return obsWeight*obsRatio + (1-obsWeight)*proximityRatio
}

// ScoreCandidates computes distance-from-start and policy scores for a whole
// batch, returning candidates in input order.
func ScoreCandidates(
	candidates []*domain.Candidate,
	start domain.Coordinates,
	policy domain.ScoringPolicy,
) []domain.ScoredCandidate {
	scored := make([]domain.ScoredCandidate, 0, len(candidates))

	maxObs := 0
	maxDist := 0.0
	distances := make([]float64, len(candidates))
	for i, c := range candidates {
		distances[i] = start.DistanceKm(c.Coordinates)
		if c.ObservationScore > maxObs {
			maxObs = c.ObservationScore
		}
		if distances[i] > maxDist {
			maxDist = distances[i]
		}
	}

	for i, c := range candidates {
		scored = append(scored, domain.ScoredCandidate{
			Candidate:           *c,
			DistanceFromStartKm: distances[i],
			Score:               ScoreCandidate(*c, distances[i], maxObs, maxDist, policy),
		})
	}

	return scored
}
