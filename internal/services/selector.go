package services

import (
	"birding-trip-service/internal/domain"
	"slices"
)

// SelectStops returns the best maxStops candidates.
//
// When the input already fits under the cap it is returned unchanged in
// original order; tests rely on that determinism. Otherwise the top maxStops
// by score are returned, sorted descending, with ties broken by original
// input order (stable sort).
func SelectStops(candidates []domain.ScoredCandidate, maxStops int) []domain.ScoredCandidate {
	if maxStops < 0 {
		maxStops = 0
	}

	if len(candidates) <= maxStops {
		return candidates
	}

	ranked := make([]domain.ScoredCandidate, len(candidates))
	copy(ranked, candidates)

	slices.SortStableFunc(ranked, func(a, b domain.ScoredCandidate) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	return ranked[:maxStops]
}
