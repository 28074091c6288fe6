package store

import (
	"context"
	"database/sql"
	"fmt"

	"labtrack-api/internal/models"

	"github.com/google/uuid"
)

// GetUserByEmail returns an active user for login, or ErrNotFound.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*models.User, error) {
	var u models.User
	var fullName sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, full_name, is_active, is_superuser
		 FROM users WHERE email = $1 AND is_active = TRUE`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &fullName, &u.IsActive, &u.IsSuperuser)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	if fullName.Valid {
		u.FullName = &fullName.String
	}
	return &u, nil
}

// GetUser returns a user by id, or ErrNotFound.
func GetUser(ctx context.Context, db *sql.DB, id uuid.UUID) (*models.User, error) {
	var u models.User
	var fullName sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, full_name, is_active, is_superuser
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &fullName, &u.IsActive, &u.IsSuperuser)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if fullName.Valid {
		u.FullName = &fullName.String
	}
	return &u, nil
}

// CreateUser persists a new user; duplicate emails map to ErrConflict.
func CreateUser(ctx context.Context, db *sql.DB, u *models.User) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, is_active, is_superuser)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.IsActive, u.IsSuperuser,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("user with email %q: %w", u.Email, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// UpdatePassword replaces a user's password hash.
func UpdatePassword(ctx context.Context, db *sql.DB, id uuid.UUID, hash string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id,
	)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user: %w", ErrNotFound)
	}
	return nil
}
