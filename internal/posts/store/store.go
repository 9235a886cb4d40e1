package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/postboard/internal/posts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Sub-repositories are reached
// through it so a transaction can hand out the same repos bound to the tx.
type Store interface {
	Users() Users
	Posts() Posts

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts u; a taken username returns ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateMFASecret stores a pending TOTP secret.
	UpdateMFASecret(ctx context.Context, userID, secret string) error

	// EnableMFA stamps mfa_enabled.
	EnableMFA(ctx context.Context, userID string) error

	// DisableMFA clears both MFA columns.
	DisableMFA(ctx context.Context, userID string) error
}

type Posts interface {
	// CreatePost inserts p and returns its id.
	CreatePost(ctx context.Context, p domain.Post) (int64, error)

	GetPostByID(ctx context.Context, id int64) (domain.Post, error)

	// GetPostOwner reads only the author id, uncached.
	GetPostOwner(ctx context.Context, id int64) (string, error)

	// ListPosts returns the newest posts first.
	ListPosts(ctx context.Context, limit int) ([]domain.Post, error)

	// UpdatePostAuthor reassigns ownership.
	UpdatePostAuthor(ctx context.Context, id int64, authorID string) error

	// DeletePost returns ErrNotFound when no row was removed.
	DeletePost(ctx context.Context, id int64) error
}
