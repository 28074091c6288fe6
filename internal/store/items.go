package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"labtrack-api/internal/models"

	"github.com/google/uuid"
)

// createdMessage is the fixed system message attached to every new item.
const createdMessage = "Item created via API."

// ListOptions holds pagination and ordering for item listings. OrderBy
// must already be a safe clause (built from a whitelist); empty means
// database-default ordering, which is not guaranteed stable.
type ListOptions struct {
	Skip    int
	Limit   int
	OrderBy string
}

// ListItems returns one page of items plus the total item count.
func ListItems(ctx context.Context, db *sql.DB, opts ListOptions) ([]models.Item, int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("counting items: %w", err)
	}

	sqlStr := `SELECT id, title, description, type, status, location_id FROM items`
	sqlStr += opts.OrderBy
	sqlStr += ` LIMIT $1 OFFSET $2`

	rows, err := db.QueryContext(ctx, sqlStr, opts.Limit, opts.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Type, &it.Status, &it.LocationID); err != nil {
			return nil, 0, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, it)
	}
	return items, count, rows.Err()
}

// GetItem returns a single item or ErrNotFound.
func GetItem(ctx context.Context, db *sql.DB, id uuid.UUID) (*models.Item, error) {
	return getItem(ctx, db, id)
}

func getItem(ctx context.Context, q querier, id uuid.UUID) (*models.Item, error) {
	var it models.Item
	err := q.QueryRowContext(ctx,
		`SELECT id, title, description, type, status, location_id FROM items WHERE id = $1`, id,
	).Scan(&it.ID, &it.Title, &it.Description, &it.Type, &it.Status, &it.LocationID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return &it, nil
}

// CreateItem persists a new item and its "created" log entry in one
// transaction; either both rows become visible or neither does.
func CreateItem(ctx context.Context, db *sql.DB, item *models.Item, operatorID uuid.UUID) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, title, description, type, status, location_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.Title, item.Description, item.Type, item.Status, item.LocationID,
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}

	if _, err := insertLog(ctx, tx, item.ID, createdMessage, time.Now().UTC(), operatorID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item creation: %w", err)
	}
	return nil
}

// UpdateItem applies the fields present in req and returns the updated
// item. An empty patch is a no-op that returns the current row. The
// update is deliberately not logged.
func UpdateItem(ctx context.Context, db *sql.DB, id uuid.UUID, req *models.UpdateItemRequest) (*models.Item, error) {
	if req.Empty() {
		return GetItem(ctx, db, id)
	}

	type set struct {
		sql string
		val any
	}
	sets := make([]set, 0, 4)
	if req.Title.Set {
		sets = append(sets, set{"title = $%d", req.Title.Value})
	}
	if req.Description.Set {
		sets = append(sets, set{"description = $%d", req.Description.Value})
	}
	if req.Type.Set {
		sets = append(sets, set{"type = $%d", req.Type.Value})
	}
	if req.Status.Set {
		sets = append(sets, set{"status = $%d", req.Status.Value})
	}

	args := make([]any, 0, len(sets)+1)
	sqlStr := "UPDATE items SET "
	for i, s := range sets {
		if i > 0 {
			sqlStr += ", "
		}
		sqlStr += fmt.Sprintf(s.sql, i+1)
		args = append(args, s.val)
	}
	sqlStr += fmt.Sprintf(" WHERE id = $%d RETURNING id, title, description, type, status, location_id", len(args)+1)
	args = append(args, id)

	var it models.Item
	err := db.QueryRowContext(ctx, sqlStr, args...).Scan(
		&it.ID, &it.Title, &it.Description, &it.Type, &it.Status, &it.LocationID,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	return &it, nil
}

// DeleteItem removes an item; its logs go with it via the cascading
// foreign key. Irreversible.
func DeleteItem(ctx context.Context, db *sql.DB, id uuid.UUID) error {
	res, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item: %w", ErrNotFound)
	}
	return nil
}

// MoveItem relocates an item to an existing location, appending a log
// entry that names the prior location ("None" when the item was
// unplaced). Moving an item onto its current location is rejected with
// ErrSameLocation and leaves no trace. Log and location update commit
// atomically. Returns the destination location.
func MoveItem(ctx context.Context, db *sql.DB, itemID, locationID, operatorID uuid.UUID) (*models.Location, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var loc models.Location
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, description FROM locations WHERE id = $1`, locationID,
	).Scan(&loc.ID, &loc.Name, &loc.Description)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("location: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}

	item, err := getItem(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}

	if item.LocationID != nil && *item.LocationID == loc.ID {
		return nil, fmt.Errorf("item %q is already in the location %q: %w", item.Title, loc.Name, ErrSameLocation)
	}

	// Resolve the prior location to a null-safe name for the log line.
	prevName := "None"
	if item.LocationID != nil {
		err = tx.QueryRowContext(ctx,
			`SELECT name FROM locations WHERE id = $1`, *item.LocationID,
		).Scan(&prevName)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("resolving previous location: %w", err)
		}
	}

	msg := fmt.Sprintf("Item moved from %s to %s.", prevName, loc.Name)
	if _, err := insertLog(ctx, tx, item.ID, msg, time.Now().UTC(), operatorID); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET location_id = $1 WHERE id = $2`, loc.ID, item.ID,
	); err != nil {
		return nil, fmt.Errorf("updating item location: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing move: %w", err)
	}
	return &loc, nil
}
