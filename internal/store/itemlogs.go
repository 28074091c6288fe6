package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"labtrack-api/internal/models"

	"github.com/google/uuid"
)

// insertLog appends an immutable audit row for an item. The registration
// timestamp is always the current time; the logical date is whatever the
// caller decided. There is no corresponding update or delete.
func insertLog(ctx context.Context, q querier, itemID uuid.UUID, message string, date time.Time, operatorID uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	_, err := q.ExecContext(ctx,
		`INSERT INTO item_logs (id, message, date, date_registered, operator_id, item_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, message, date, time.Now().UTC(), operatorID, itemID,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting item log: %w", err)
	}
	return id, nil
}

// ListItemLogs returns all logs for an item newest-first by logical date,
// with the operator resolved to a display name. Fails with ErrNotFound
// when the item itself is absent.
func ListItemLogs(ctx context.Context, db *sql.DB, itemID uuid.UUID) ([]models.LogEntry, error) {
	if _, err := GetItem(ctx, db, itemID); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT l.id, l.item_id, l.message, l.date, u.full_name
		 FROM item_logs l
		 LEFT JOIN users u ON u.id = l.operator_id
		 WHERE l.item_id = $1
		 ORDER BY l.date DESC, l.date_registered DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item logs: %w", err)
	}
	defer rows.Close()

	logs := []models.LogEntry{}
	for rows.Next() {
		var entry models.LogEntry
		var name sql.NullString
		if err := rows.Scan(&entry.ID, &entry.ItemID, &entry.Message, &entry.Date, &name); err != nil {
			return nil, fmt.Errorf("scanning item log: %w", err)
		}
		if name.Valid {
			entry.OperatorName = &name.String
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// CreateItemLog appends a caller-supplied log entry to an item. The
// logical date defaults to the current time when the caller omits it.
func CreateItemLog(ctx context.Context, db *sql.DB, itemID uuid.UUID, message string, date *time.Time, operatorID uuid.UUID) (*models.LogEntry, error) {
	if _, err := GetItem(ctx, db, itemID); err != nil {
		return nil, err
	}

	logDate := time.Now().UTC()
	if date != nil {
		logDate = date.UTC()
	}

	id, err := insertLog(ctx, db, itemID, message, logDate, operatorID)
	if err != nil {
		return nil, err
	}

	entry := models.LogEntry{
		ID:      id,
		ItemID:  &itemID,
		Message: message,
		Date:    logDate,
	}

	var name sql.NullString
	err = db.QueryRowContext(ctx, `SELECT full_name FROM users WHERE id = $1`, operatorID).Scan(&name)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("resolving operator: %w", err)
	}
	if name.Valid {
		entry.OperatorName = &name.String
	}
	return &entry, nil
}
