package services

import "errors"

var (
	// ErrNoCandidates is returned when a planning request carries no
	// candidate locations. It is surfaced before any network I/O.
	ErrNoCandidates = errors.New("no candidate locations to plan with")

	// ErrRoutingUnavailable is returned only when both the optimizing and
	// the sequential routing collaborators failed to produce a usable route.
	// It is the single terminal error for a planning attempt.
	ErrRoutingUnavailable = errors.New("routing unavailable: could not calculate a route")
)
