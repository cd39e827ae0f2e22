package cache

import (
	"birding-trip-service/internal/domain"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAddressCache implements the AddressCache port on Redis with native
// key expiry. Keys are coordinates rounded to four decimals so nearby
// lookups for the same hotspot collapse onto one entry; inserts are
// last-write-wins.
type RedisAddressCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisAddressCache(rdb *redis.Client, ttl time.Duration) *RedisAddressCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisAddressCache{rdb: rdb, ttl: ttl}
}

func addressKey(coord domain.Coordinates) string {
	return fmt.Sprintf("addr:%.4f,%.4f", coord.Lat, coord.Lng)
}

// Get returns the cached address for a coordinate, reporting whether a live
// entry was found.
func (c *RedisAddressCache) Get(ctx context.Context, coord domain.Coordinates) (string, bool, error) {
	if c.rdb == nil {
		return "", false, errors.New("address cache: redis client is nil")
	}

	addr, err := c.rdb.Get(ctx, addressKey(coord)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get address cache: %w", err)
	}
	return addr, true, nil
}

// Put stores an address for a coordinate with the configured TTL.
func (c *RedisAddressCache) Put(ctx context.Context, coord domain.Coordinates, address string) error {
	if c.rdb == nil {
		return errors.New("address cache: redis client is nil")
	}
	if address == "" {
		return errors.New("address cache: empty address")
	}

	if err := c.rdb.Set(ctx, addressKey(coord), address, c.ttl).Err(); err != nil {
		return fmt.Errorf("put address cache: %w", err)
	}
	return nil
}
