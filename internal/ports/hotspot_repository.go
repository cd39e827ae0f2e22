package ports

import (
	"birding-trip-service/internal/domain"
	"context"
)

// Port: a boundary for retrieving candidate hotspots from a data source.
type HotspotRepository interface {
	// Retrieve all stored hotspots available as trip candidates.
	ListHotspots(ctx context.Context) ([]*domain.Candidate, error)
}
