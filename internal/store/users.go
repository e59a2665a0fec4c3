package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/fitness/internal/apperror"
	"github.com/vaughan-dsouza/fitness/internal/models"
)

const userColumns = `id, username, email, image_file, password_hash, created_at`

type UserStore struct {
	DB *sqlx.DB
}

// Create inserts u and fills in its id and creation time. A username or email
// that is already taken comes back as a conflict naming the field.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	u.Email = normalizeEmail(u.Email)
	if u.ImageFile == "" {
		u.ImageFile = models.DefaultImageFile
	}

	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO users (username, email, image_file, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Username, u.Email, u.ImageFile, u.Password).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if conflict, ok := conflictFrom(err); ok {
			return conflict
		}
		return apperror.NewDatabaseError("failed to create user", err)
	}
	return nil
}

func (s *UserStore) ByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	if err != nil {
		return nil, notFoundOr(err, "User")
	}
	return &u, nil
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email=$1`, normalizeEmail(email))
	if err != nil {
		return nil, notFoundOr(err, "User")
	}
	return &u, nil
}

func (s *UserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
	if err != nil {
		return nil, notFoundOr(err, "User")
	}
	return &u, nil
}

// UsernameTaken reports whether a user other than exceptID owns username.
// Pass 0 to check against every user.
func (s *UserStore) UsernameTaken(ctx context.Context, username string, exceptID int64) (bool, error) {
	var exists bool
	err := s.DB.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM users WHERE username=$1 AND id<>$2)
	`, username, exceptID)
	if err != nil {
		return false, apperror.NewDatabaseError("failed to check username", err)
	}
	return exists, nil
}

func (s *UserStore) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var exists bool
	err := s.DB.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email=$1 AND id<>$2)
	`, normalizeEmail(email), exceptID)
	if err != nil {
		return false, apperror.NewDatabaseError("failed to check email", err)
	}
	return exists, nil
}

// Update writes the profile fields: username, email and image file.
func (s *UserStore) Update(ctx context.Context, u *models.User) error {
	u.Email = normalizeEmail(u.Email)

	res, err := s.DB.ExecContext(ctx, `
		UPDATE users
		SET username=$1, email=$2, image_file=$3
		WHERE id=$4
	`, u.Username, u.Email, u.ImageFile, u.ID)
	if err != nil {
		if conflict, ok := conflictFrom(err); ok {
			return conflict
		}
		return apperror.NewDatabaseError("failed to update user", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError("User not found", nil)
	}
	return nil
}
