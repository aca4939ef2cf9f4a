package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"noteskeeper/internal/logger"
	"noteskeeper/internal/models"
)

// ErrNoteNotFound is returned when a note mutation matches no active row
// owned by the caller.
var ErrNoteNotFound = errors.New("note not found")

type NoteReadRepository struct {
	db *sqlx.DB
}

func NewNoteReadRepository(db *sqlx.DB) *NoteReadRepository {
	return &NoteReadRepository{db: db}
}

// GetByID returns the active note with the given id owned by userID, or nil
// if no such note exists.
func (r *NoteReadRepository) GetByID(ctx context.Context, id, userID int64) (*models.NoteDB, error) {
	const query = `
		SELECT id, user_id, title, content, active, created_at, updated_at
		FROM notes
		WHERE id = $1
		  AND user_id = $2
		  AND active = TRUE
		LIMIT 1
	`

	var note models.NoteDB
	err := r.db.GetContext(ctx, &note, query, id, userID)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &note, nil
}

type NoteWriteRepository struct {
	db *sqlx.DB
}

func NewNoteWriteRepository(db *sqlx.DB) *NoteWriteRepository {
	return &NoteWriteRepository{db: db}
}

// Save inserts a new note for the owner and returns its id.
func (r *NoteWriteRepository) Save(ctx context.Context, userID int64, title, content string) (int64, error) {
	const query = `
		INSERT INTO notes (user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := r.db.GetContext(ctx, &id, query, userID, title, content)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, title},
		"result", id,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return id, nil
}

// Update replaces the title and content of an active note owned by userID.
// Returns ErrNoteNotFound when no row matches.
func (r *NoteWriteRepository) Update(ctx context.Context, id, userID int64, title, content string) error {
	const query = `
		UPDATE notes
		SET title = $1, content = $2, updated_at = NOW()
		WHERE id = $3
		  AND user_id = $4
		  AND active = TRUE
	`

	res, err := r.db.ExecContext(ctx, query, title, content, id, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, userID, title},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// Deactivate soft-deletes an active note owned by userID. Returns
// ErrNoteNotFound when no row matches.
func (r *NoteWriteRepository) Deactivate(ctx context.Context, id, userID int64) error {
	const query = `
		UPDATE notes
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1
		  AND user_id = $2
		  AND active = TRUE
	`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, userID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNoteNotFound
	}

	return nil
}
