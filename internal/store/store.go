// Package store holds the SQL for users, posts and comments.
package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/fitness/internal/apperror"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Store struct {
	DB       *sqlx.DB
	Users    *UserStore
	Posts    *PostStore
	Comments *CommentStore
}

func New(db *sqlx.DB) *Store {
	return &Store{
		DB:       db,
		Users:    &UserStore{DB: db},
		Posts:    &PostStore{DB: db},
		Comments: &CommentStore{DB: db},
	}
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func pgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

// conflictFrom turns a unique violation on users into a field-level conflict.
func conflictFrom(err error) (*apperror.AppError, bool) {
	pgErr, ok := pgError(err, pgUniqueViolation)
	if !ok {
		return nil, false
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return apperror.NewConflictError("username", "username already exists"), true
	case strings.Contains(pgErr.ConstraintName, "email"):
		return apperror.NewConflictError("email", "email already exists"), true
	}
	return apperror.NewConflictError("", "duplicate value"), true
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NewNotFoundError(what+" not found", err)
	}
	return apperror.NewDatabaseError("failed to load "+strings.ToLower(what), err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
