package cache

import (
	"birding-trip-service/internal/domain"
	"birding-trip-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLAddressCache is a Postgres-backed AddressCache with explicit expiry.
//
// Expiry is checked against an injected clock instead of the database's
// wall clock so tests can advance time deterministically. Expired rows are
// treated as misses and overwritten on the next Put; they are never read.
type SQLAddressCache struct {
	DB  *sql.DB
	TTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewSQLAddressCache(db *sql.DB, ttl time.Duration) *SQLAddressCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SQLAddressCache{DB: db, TTL: ttl, Now: time.Now}
}

func (c *SQLAddressCache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Get returns the cached address for a coordinate, reporting whether a live
// (unexpired) entry was found.
func (c *SQLAddressCache) Get(ctx context.Context, coord domain.Coordinates) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "address.cache.Get")(&err)

	if c.DB == nil {
		return "", false, errors.New("address cache: db is nil")
	}

	q := `
	SELECT address, expires_at
	FROM address_cache
	WHERE cache_key = $1;
	`

	var addr string
	var expiresAt time.Time
	err = c.DB.QueryRowContext(ctx, q, addressKey(coord)).Scan(&addr, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get address cache: query address_cache table: %w", err)
	}

	if !c.now().Before(expiresAt) {
		return "", false, nil
	}
	return addr, true, nil
}

// Put stores an address for a coordinate. Inserts are idempotent and
// last-write-wins; each write restarts the entry's TTL.
func (c *SQLAddressCache) Put(ctx context.Context, coord domain.Coordinates, address string) error {
	if c.DB == nil {
		return errors.New("address cache: db is nil")
	}
	if address == "" {
		return errors.New("address cache: empty address")
	}

	q := `
	INSERT INTO address_cache (cache_key, address, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET address = EXCLUDED.address,
		expires_at = EXCLUDED.expires_at;
	`

	expiresAt := c.now().Add(c.TTL)
	if _, err := c.DB.ExecContext(ctx, q, addressKey(coord), address, expiresAt); err != nil {
		return fmt.Errorf("insert address cache key=%q: %w", addressKey(coord), err)
	}
	return nil
}

// InitSchema creates the address cache table.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS address_cache (
		cache_key TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	);
	`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init schema: create address_cache table: %w", err)
	}
	return nil
}
