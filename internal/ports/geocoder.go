package ports

import (
	"birding-trip-service/internal/domain"
	"context"
)

// Contract for resolving a coordinate pair into a human-readable address.
// Implementations are expected to sit behind a rate-limited provider; callers
// pace their requests through the task scheduler.
type ReverseGeocoder interface {
	// Return the address closest to the given coordinates.
	ResolveAddress(ctx context.Context, coord domain.Coordinates) (string, error)
}
