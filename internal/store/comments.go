package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/fitness/internal/apperror"
	"github.com/vaughan-dsouza/fitness/internal/models"
)

const commentSelect = `
	SELECT c.id, c.post_id, c.user_id, c.content, c.date_commented,
	       u.username AS author_username, u.image_file AS author_image
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

type CommentStore struct {
	DB *sqlx.DB
}

// Create inserts c. A post_id with no matching post is a not-found error.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) error {
	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, date_commented
	`, c.PostID, c.UserID, c.Content).Scan(&c.ID, &c.DateCommented)
	if err != nil {
		if _, ok := pgError(err, pgForeignKeyViolation); ok {
			return apperror.NewNotFoundError("Post not found", err)
		}
		return apperror.NewDatabaseError("failed to create comment", err)
	}
	return nil
}

// ByID loads a comment only if it belongs to postID.
func (s *CommentStore) ByID(ctx context.Context, postID, commentID int64) (*models.Comment, error) {
	var c models.Comment
	err := s.DB.GetContext(ctx, &c, commentSelect+` WHERE c.id=$1 AND c.post_id=$2`, commentID, postID)
	if err != nil {
		return nil, notFoundOr(err, "Comment")
	}
	return &c, nil
}

// ListByPost returns every comment on postID, newest first.
func (s *CommentStore) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := s.DB.SelectContext(ctx, &comments, commentSelect+`
		WHERE c.post_id=$1
		ORDER BY c.date_commented DESC, c.id DESC
	`, postID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list comments", err)
	}
	return comments, nil
}
