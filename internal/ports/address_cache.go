package ports

import (
	"birding-trip-service/internal/domain"
	"context"
)

// Contract for caching resolved addresses between enrichment calls.
//
// Keys are coordinate pairs rounded to four decimals (~11m), so nearby
// lookups for the same hotspot collapse onto one entry. Inserts are
// idempotent and last-write-wins; expiry is owned by the implementation.
type AddressCache interface {
	// Return the cached address for a coordinate, reporting whether a
	// live entry was found.
	Get(ctx context.Context, coord domain.Coordinates) (string, bool, error)
	// Store an address for a coordinate.
	Put(ctx context.Context, coord domain.Coordinates, address string) error
}
