package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/fitness/internal/apperror"
	"github.com/vaughan-dsouza/fitness/internal/models"
)

var userCols = []string{"id", "username", "email", "image_file", "password_hash", "created_at"}

func TestUserCreate(t *testing.T) {
	s, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(q("INSERT INTO users")).
		WithArgs("corey", "corey@example.com", models.DefaultImageFile, "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, now))

	u := &models.User{Username: "corey", Email: " Corey@Example.com", Password: "hash"}
	require.NoError(t, s.Users.Create(context.Background(), u))

	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "corey@example.com", u.Email)
	assert.Equal(t, models.DefaultImageFile, u.ImageFile)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(q("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"})

	err := s.Users.Create(context.Background(), &models.User{Username: "corey", Email: "c@example.com", Password: "hash"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.Equal(t, "email", apperror.From(err).Field)
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(q("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_username_key"})

	err := s.Users.Create(context.Background(), &models.User{Username: "corey", Email: "c@example.com", Password: "hash"})
	assert.Equal(t, "username", apperror.From(err).Field)
}

func TestUserByEmail(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(q("FROM users WHERE email=$1")).
		WithArgs("corey@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(3, "corey", "corey@example.com", "default.jpg", "hash", time.Now()))

	u, err := s.Users.ByEmail(context.Background(), "COREY@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, "hash", u.Password)
}

func TestUserByUsernameNotFound(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(q("FROM users WHERE username=$1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := s.Users.ByUsername(context.Background(), "ghost")
	assert.True(t, apperror.IsNotFound(err))
}

func TestUserByIDDatabaseError(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(q("FROM users WHERE id=$1")).WillReturnError(errors.New("connection reset"))

	_, err := s.Users.ByID(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, apperror.IsNotFound(err))
	assert.Equal(t, apperror.DatabaseError, apperror.From(err).Type)
}

func TestUsernameTakenExcludesSelf(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(q("SELECT EXISTS (SELECT 1 FROM users WHERE username=$1 AND id<>$2)")).
		WithArgs("corey", 4).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	taken, err := s.Users.UsernameTaken(context.Background(), "corey", 4)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestEmailTaken(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(q("WHERE email=$1 AND id<>$2")).
		WithArgs("corey@example.com", 0).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := s.Users.EmailTaken(context.Background(), "Corey@example.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUserUpdate(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(q("UPDATE users")).
		WithArgs("corey2", "new@example.com", "abc.png", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{ID: 3, Username: "corey2", Email: "New@example.com", ImageFile: "abc.png"}
	require.NoError(t, s.Users.Update(context.Background(), u))
}

func TestUserUpdateConflict(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(q("UPDATE users")).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_username_key"})

	err := s.Users.Update(context.Background(), &models.User{ID: 3, Username: "taken", Email: "a@b.co"})
	assert.True(t, apperror.IsConflict(err))
}
