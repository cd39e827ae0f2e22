package repositories

import (
	"birding-trip-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite-backed implementation of the HotspotRepository port.
type SqliteHotspotRepository struct{ DB *sql.DB }

func NewSqliteHotspotRepository(db *sql.DB) *SqliteHotspotRepository {
	return &SqliteHotspotRepository{DB: db}
}

// Return all hotspots stored in the database.
func (s *SqliteHotspotRepository) ListHotspots(ctx context.Context) ([]*domain.Candidate, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite hotspot repository: DB is nil")
	}

	query := `
	SELECT
		hotspot_id,
		name,
		lat,
		lng,
		observation_score
	FROM hotspots
	ORDER BY hotspot_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list hotspots: query hotspots table: %w", err)
	}
	defer rows.Close()

	hotspots := make([]*domain.Candidate, 0, 64)
	for rows.Next() {
		var id, name string
		var lat, lng float64
		var score int
		if err := rows.Scan(&id, &name, &lat, &lng, &score); err != nil {
			return nil, fmt.Errorf("list hotspots: scan row: %w", err)
		}
		hotspots = append(hotspots, &domain.Candidate{
			ID:               id,
			Name:             name,
			Coordinates:      domain.Coordinates{Lat: lat, Lng: lng},
			ObservationScore: score,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hotspots: row iteration: %w", err)
	}

	return hotspots, nil
}
