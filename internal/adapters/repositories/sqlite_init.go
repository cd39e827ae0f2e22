package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createHotspotsQuery := `
	CREATE TABLE IF NOT EXISTS hotspots (
		hotspot_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		observation_score INTEGER NOT NULL DEFAULT 0
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_hotspots_observation_score
	ON hotspots(observation_score);
	`

	statements := []string{
		createHotspotsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type HotspotSeed struct {
	HotspotID        string  `json:"hotspot_id"`
	Name             string  `json:"name"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	ObservationScore int     `json:"observation_score"`
}

// Populate the database with hotspot data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed hotspots: read %q: %w", jsonPath, err)
	}

	var data []HotspotSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed hotspots: parse json: %w", err)
	}

	rows := make([]HotspotSeed, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.HotspotID)
		if id == "" {
			return fmt.Errorf("seed hotspots: item at index %d: hotspot_id cannot be empty", i+1)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed hotspots: item at index %d: name cannot be empty", i+1)
		}

		if item.ObservationScore < 0 {
			return fmt.Errorf("seed hotspots: item at index %d: negative observation_score %d", i+1, item.ObservationScore)
		}
		rows = append(rows, HotspotSeed{
			HotspotID:        id,
			Name:             name,
			Lat:              item.Lat,
			Lng:              item.Lng,
			ObservationScore: item.ObservationScore,
		})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed hotspots: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO hotspots (
		hotspot_id,
		name,
		lat,
		lng,
		observation_score
	)
	VALUES (?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed hotspots: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range rows {
		if _, err := stmt.Exec(h.HotspotID, h.Name, h.Lat, h.Lng, h.ObservationScore); err != nil {
			return fmt.Errorf("seed hotspots: insert hotspot_id=%q: %w", h.HotspotID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed hotspots: commit tx: %w", err)
	}

	return nil
}
