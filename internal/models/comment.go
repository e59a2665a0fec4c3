package models

import "time"

type Comment struct {
	ID            int64     `db:"id" json:"id"`
	PostID        int64     `db:"post_id" json:"post_id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	Content       string    `db:"content" json:"content"`
	DateCommented time.Time `db:"date_commented" json:"date_commented"`

	AuthorUsername string `db:"author_username" json:"author_username"`
	AuthorImage    string `db:"author_image" json:"author_image"`
}
