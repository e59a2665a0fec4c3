package models

import "time"

type Post struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	Title      string    `db:"title" json:"title"`
	Content    string    `db:"content" json:"content"`
	DatePosted time.Time `db:"date_posted" json:"date_posted"`

	// Filled from the joined users row on reads.
	AuthorUsername string `db:"author_username" json:"author_username"`
	AuthorImage    string `db:"author_image" json:"author_image"`
}
