package domain

import "time"

// Post is a message on the board. AuthorID is the ownership fact that delete
// capability tokens are checked against.
type Post struct {
	ID        int64
	AuthorID  string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostView is a post as rendered for one viewer.
type PostView struct {
	Post

	AuthorUsername    string
	AuthorDisplayName string

	// DeleteToken is only set when the viewer owns the post and delete
	// capabilities are enabled.
	DeleteToken string
}
