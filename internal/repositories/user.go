package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"noteskeeper/internal/logger"
	"noteskeeper/internal/models"
)

// ErrUsernameExists is returned when an insert hits the unique constraint
// on active usernames. Concurrent registrations for the same name resolve
// in the store, not in the service layer.
var ErrUsernameExists = errors.New("username already exists")

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsername returns the active account with the given username, or nil
// if no such account exists. Soft-deleted rows are never returned.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT id, username, password_hash, active, created_at, updated_at
		FROM users
		WHERE username = $1
		  AND active = TRUE
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new account and returns its store-assigned id. Returns
// ErrUsernameExists if an active account with the username already exists.
func (r *UserWriteRepository) Save(ctx context.Context, username, passwordHash string) (int64, error) {
	const query = `
		INSERT INTO users (username, password_hash, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := r.db.GetContext(ctx, &id, query, username, passwordHash)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"result", id,
		"error", err,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return 0, ErrUsernameExists
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}

// UpdatePasswordHash replaces the digest stored for the username. Updating
// an unknown username affects no rows and is reported as success.
func (r *UserWriteRepository) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE username = $2
		  AND active = TRUE
	`

	res, err := r.db.ExecContext(ctx, query, passwordHash, username)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// Deactivate soft-deletes the account by flipping its active flag.
// Idempotent: deactivating an already inactive or unknown username succeeds.
func (r *UserWriteRepository) Deactivate(ctx context.Context, username string) error {
	const query = `
		UPDATE users
		SET active = FALSE, updated_at = NOW()
		WHERE username = $1
		  AND active = TRUE
	`

	res, err := r.db.ExecContext(ctx, query, username)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
