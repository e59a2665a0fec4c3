package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/fitness/internal/apperror"
	"github.com/vaughan-dsouza/fitness/internal/models"
)

const postSelect = `
	SELECT p.id, p.user_id, p.title, p.content, p.date_posted,
	       u.username AS author_username, u.image_file AS author_image
	FROM posts p
	JOIN users u ON u.id = p.user_id
`

type PostStore struct {
	DB *sqlx.DB
}

// ---------------------- CREATE ----------------------

func (s *PostStore) Create(ctx context.Context, p *models.Post) error {
	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO posts (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, date_posted
	`, p.UserID, p.Title, p.Content).Scan(&p.ID, &p.DatePosted)
	if err != nil {
		if _, ok := pgError(err, pgForeignKeyViolation); ok {
			return apperror.NewNotFoundError("User not found", err)
		}
		return apperror.NewDatabaseError("failed to create post", err)
	}
	return nil
}

// ---------------------- GET ONE ----------------------

func (s *PostStore) ByID(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	if err := s.DB.GetContext(ctx, &p, postSelect+` WHERE p.id=$1`, id); err != nil {
		return nil, notFoundOr(err, "Post")
	}
	return &p, nil
}

// ---------------------- LIST ----------------------

// List returns one page of every post, newest first.
func (s *PostStore) List(ctx context.Context, page int) (models.Page[models.Post], error) {
	var total int
	if err := s.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts`); err != nil {
		return models.Page[models.Post]{}, apperror.NewDatabaseError("failed to count posts", err)
	}

	var posts []models.Post
	err := s.DB.SelectContext(ctx, &posts, postSelect+`
		ORDER BY p.date_posted DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`, models.PerPage, models.Offset(page, models.PerPage))
	if err != nil {
		return models.Page[models.Post]{}, apperror.NewDatabaseError("failed to list posts", err)
	}

	return models.NewPage(posts, page, models.PerPage, total), nil
}

// ListByUser returns one page of userID's posts, newest first.
func (s *PostStore) ListByUser(ctx context.Context, userID int64, page int) (models.Page[models.Post], error) {
	var total int
	if err := s.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts WHERE user_id=$1`, userID); err != nil {
		return models.Page[models.Post]{}, apperror.NewDatabaseError("failed to count posts", err)
	}

	var posts []models.Post
	err := s.DB.SelectContext(ctx, &posts, postSelect+`
		WHERE p.user_id=$1
		ORDER BY p.date_posted DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`, userID, models.PerPage, models.Offset(page, models.PerPage))
	if err != nil {
		return models.Page[models.Post]{}, apperror.NewDatabaseError("failed to list posts", err)
	}

	return models.NewPage(posts, page, models.PerPage, total), nil
}

// ---------------------- UPDATE ----------------------

// Update writes title and content only.
func (s *PostStore) Update(ctx context.Context, p *models.Post) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE posts
		SET title=$1, content=$2
		WHERE id=$3
	`, p.Title, p.Content, p.ID)
	if err != nil {
		return apperror.NewDatabaseError("failed to update post", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError("Post not found", nil)
	}
	return nil
}

// ---------------------- DELETE ----------------------

// Delete removes the post; its comments go with it (ON DELETE CASCADE).
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError("Post not found", nil)
	}
	return nil
}
