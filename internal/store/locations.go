package store

import (
	"context"
	"database/sql"
	"fmt"

	"labtrack-api/internal/models"

	"github.com/google/uuid"
)

// ListLocations returns every location collapsed to an id -> name map.
func ListLocations(ctx context.Context, db *sql.DB) (map[uuid.UUID]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM locations`)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	locations := map[uuid.UUID]string{}
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		locations[id] = name
	}
	return locations, rows.Err()
}

// GetLocation returns a location, or (nil, nil) when absent. Unlike
// GetItem this does not treat a missing row as an error; callers render
// the null result directly.
func GetLocation(ctx context.Context, db *sql.DB, id uuid.UUID) (*models.Location, error) {
	var loc models.Location
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description FROM locations WHERE id = $1`, id,
	).Scan(&loc.ID, &loc.Name, &loc.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}
	return &loc, nil
}

// CreateLocation persists a new location. A pre-insert name lookup gives
// a friendly conflict error; the unique index on name is the real guard
// against concurrent creates, so a constraint violation maps to the same
// conflict.
func CreateLocation(ctx context.Context, db *sql.DB, loc *models.Location) error {
	var existing uuid.UUID
	err := db.QueryRowContext(ctx, `SELECT id FROM locations WHERE name = $1`, loc.Name).Scan(&existing)
	if err == nil {
		return fmt.Errorf("location with name %q: %w", loc.Name, ErrConflict)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking location name: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO locations (id, name, description) VALUES ($1, $2, $3)`,
		loc.ID, loc.Name, loc.Description,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("location with name %q: %w", loc.Name, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("inserting location: %w", err)
	}
	return nil
}
