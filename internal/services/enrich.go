package services

import (
	"birding-trip-service/internal/domain"
	"birding-trip-service/internal/metrics"
	"birding-trip-service/internal/platform/obs"
	"birding-trip-service/internal/ports"
	"birding-trip-service/internal/sched"
	"context"
	"fmt"
	"log"
	"time"
)

// Defaults sized for the reverse-geocoding provider's ~2 req/sec ceiling.
const (
	defaultEnrichConcurrency = 2
	defaultEnrichInterval    = 500 * time.Millisecond
)

// EnrichConfig bounds the reverse-geocoding batch.
type EnrichConfig struct {
	MaxConcurrent int
	MinInterval   time.Duration
}

func (c EnrichConfig) orDefaults() EnrichConfig {
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = defaultEnrichConcurrency
	}
	if c.MinInterval == 0 {
		c.MinInterval = defaultEnrichInterval
	}
	return c
}

// EnrichAddresses reverse-geocodes every candidate that lacks an address,
// running the lookups as rate-limited scheduler tasks. Candidates are
// mutated in place and returned in input order.
//
// A failed lookup leaves the candidate's address empty rather than failing
// the batch: each task converts its own error into a sentinel empty-address
// success, because the geocoding network calls are expected to be flaky and
// an address is optional downstream. The injected cache is consulted first
// and populated on miss; cache errors are logged, never fatal.
func EnrichAddresses(
	ctx context.Context,
	candidates []*domain.Candidate,
	geocoder ports.ReverseGeocoder,
	cache ports.AddressCache,
	cfg EnrichConfig,
) (_ []*domain.Candidate, err error) {
	defer obs.Time(ctx, "enrich.Addresses")(&err)

	if geocoder == nil {
		return candidates, nil
	}
	cfg = cfg.orDefaults()

	pending := make([]*domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Address != "" {
			continue
		}

		if cache != nil {
			addr, ok, cacheErr := cache.Get(ctx, c.Coordinates)
			if cacheErr != nil {
				log.Printf("address cache read failed for %q: %v", c.ID, cacheErr)
			} else if ok {
				metrics.AddressCacheLookups.WithLabelValues("hit").Inc()
				c.Address = addr
				continue
			} else {
				metrics.AddressCacheLookups.WithLabelValues("miss").Inc()
			}
		}
		pending = append(pending, c)
	}

	if len(pending) == 0 {
		return candidates, nil
	}

	tasks := make([]sched.Task[string], 0, len(pending))
	for _, c := range pending {
		coord := c.Coordinates
		id := c.ID
		tasks = append(tasks, func(ctx context.Context) (string, error) {
			addr, lookupErr := geocoder.ResolveAddress(ctx, coord)
			if lookupErr != nil {
				// Sentinel success: the address stays absent, the batch
				// keeps going.
				metrics.GeocodeLookups.WithLabelValues("error").Inc()
				log.Printf("reverse geocode failed for %q: %v", id, lookupErr)
				return "", nil
			}
			metrics.GeocodeLookups.WithLabelValues("ok").Inc()
			return addr, nil
		})
	}

	addresses, err := sched.Run(ctx, tasks, sched.Config{
		MaxConcurrent: cfg.MaxConcurrent,
		MinInterval:   cfg.MinInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("enrich addresses: %w", err)
	}

	for i, c := range pending {
		if addresses[i] == "" {
			continue
		}
		c.Address = addresses[i]

		if cache != nil {
			if cacheErr := cache.Put(ctx, c.Coordinates, addresses[i]); cacheErr != nil {
				log.Printf("address cache write failed for %q: %v", c.ID, cacheErr)
			}
		}
	}

	return candidates, nil
}
