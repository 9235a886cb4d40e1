package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/postboard/internal/posts/domain"
)

type postsRepo struct {
	q   querier
	now func() time.Time
}

const postColumns = `id, author_id, title, content, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (domain.Post, error) {
	var p domain.Post
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	return p, nil
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) (int64, error) {
	now := r.now()
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO posts (author_id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.AuthorID, p.Title, p.Content, now, now,
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *postsRepo) GetPostByID(ctx context.Context, id int64) (domain.Post, error) {
	return scanPost(r.q.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
}

func (r *postsRepo) GetPostOwner(ctx context.Context, id int64) (string, error) {
	var authorID string
	err := r.q.QueryRowContext(ctx, `SELECT author_id FROM posts WHERE id = ?`, id).Scan(&authorID)
	if err != nil {
		return "", mapNotFound(err)
	}
	return authorID, nil
}

func (r *postsRepo) ListPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *postsRepo) UpdatePostAuthor(ctx context.Context, id int64, authorID string) error {
	err := mustAffect(r.q.ExecContext(ctx,
		`UPDATE posts SET author_id = ?, updated_at = ? WHERE id = ?`,
		authorID, r.now(), id,
	))
	return mapConstraint(err)
}

func (r *postsRepo) DeletePost(ctx context.Context, id int64) error {
	return mustAffect(r.q.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id))
}
