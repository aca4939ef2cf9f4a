package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestUserReadRepository_GetByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)

	now := time.Now()
	columns := []string{"id", "username", "password_hash", "active", "created_at", "updated_at"}

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, password_hash, active, created_at, updated_at FROM users WHERE username = \$1 AND active = TRUE`).
			WithArgs("alice12").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(42), "alice12", "digest", true, now, now))

		user, err := repo.GetByUsername(context.Background(), "alice12")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, int64(42), user.ID)
		assert.Equal(t, "alice12", user.Username)
		assert.Equal(t, "digest", user.PasswordHash)
		assert.True(t, user.Active)
	})

	t.Run("absent maps to nil, not error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, password_hash, active, created_at, updated_at FROM users`).
			WithArgs("nosuchuser").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByUsername(context.Background(), "nosuchuser")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("store error propagates", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, password_hash, active, created_at, updated_at FROM users`).
			WithArgs("alice12").
			WillReturnError(errors.New("connection refused"))

		user, err := repo.GetByUsername(context.Background(), "alice12")
		assert.Error(t, err)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)

	t.Run("insert returns assigned id", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users \(username, password_hash, created_at, updated_at\) VALUES \(\$1, \$2, NOW\(\), NOW\(\)\) RETURNING id`).
			WithArgs("alice12", "digest").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		id, err := repo.Save(context.Background(), "alice12", "digest")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("unique violation maps to ErrUsernameExists", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("alice12", "digest2").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_active_key"})

		id, err := repo.Save(context.Background(), "alice12", "digest2")
		assert.ErrorIs(t, err, ErrUsernameExists)
		assert.Zero(t, id)
	})

	t.Run("other errors propagate", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("alice12", "digest").
			WillReturnError(errors.New("connection refused"))

		_, err := repo.Save(context.Background(), "alice12", "digest")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrUsernameExists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_UpdatePasswordHash(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)

	t.Run("update existing row", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET password_hash = \$1, updated_at = NOW\(\) WHERE username = \$2 AND active = TRUE`).
			WithArgs("newdigest", "alice12").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdatePasswordHash(context.Background(), "alice12", "newdigest"))
	})

	t.Run("unknown username is a no-op success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET password_hash`).
			WithArgs("newdigest", "nosuchuser").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.UpdatePasswordHash(context.Background(), "nosuchuser", "newdigest"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Deactivate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)

	t.Run("flips active flag", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET active = FALSE, updated_at = NOW\(\) WHERE username = \$1 AND active = TRUE`).
			WithArgs("alice12").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Deactivate(context.Background(), "alice12"))
	})

	t.Run("idempotent for already inactive row", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET active = FALSE`).
			WithArgs("alice12").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Deactivate(context.Background(), "alice12"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
