package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/postboard/internal/posts/domain"
	"github.com/aussiebroadwan/postboard/internal/posts/store"
	"github.com/aussiebroadwan/postboard/internal/posts/store/drivers/sqlite"
	"github.com/aussiebroadwan/postboard/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createUser(t *testing.T, s store.Store, username string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		DisplayName:  username + " display",
		PasswordHash: "$argon2id$dummy",
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	alice := createUser(t, s, "alice")

	got, err := s.Users().GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, "alice display", got.DisplayName)
	require.False(t, got.CreatedAt.IsZero())
	require.Nil(t, got.MFASecret)

	got, err = s.Users().GetUserByUsername(ctx, "ALICE")
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.ID)

	err = s.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Username: "Alice", PasswordHash: "x"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserMFAColumns(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := createUser(t, s, "bob")

	require.ErrorIs(t, s.Users().EnableMFA(ctx, u.ID), store.ErrNotFound, "no pending secret")

	require.NoError(t, s.Users().UpdateMFASecret(ctx, u.ID, "JBSWY3DPEHPK3PXP"))
	require.NoError(t, s.Users().EnableMFA(ctx, u.ID))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.HasMFA())

	require.NoError(t, s.Users().DisableMFA(ctx, u.ID))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.HasMFA())
	require.Nil(t, got.MFASecret)
}

func TestPosts(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	first, err := s.Posts().CreatePost(ctx, domain.Post{AuthorID: alice.ID, Title: "one", Content: "first"})
	require.NoError(t, err)
	second, err := s.Posts().CreatePost(ctx, domain.Post{AuthorID: alice.ID, Title: "two", Content: "second"})
	require.NoError(t, err)
	require.Greater(t, second, first)

	p, err := s.Posts().GetPostByID(ctx, first)
	require.NoError(t, err)
	require.Equal(t, "one", p.Title)
	require.Equal(t, alice.ID, p.AuthorID)

	list, err := s.Posts().ListPosts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second, list[0].ID)

	list, err = s.Posts().ListPosts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.Posts().UpdatePostAuthor(ctx, first, bob.ID))
	owner, err := s.Posts().GetPostOwner(ctx, first)
	require.NoError(t, err)
	require.Equal(t, bob.ID, owner)

	require.NoError(t, s.Posts().DeletePost(ctx, first))
	require.ErrorIs(t, s.Posts().DeletePost(ctx, first), store.ErrNotFound)

	_, err = s.Posts().GetPostOwner(ctx, first)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Posts().GetPostByID(ctx, first)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.Posts().UpdatePostAuthor(ctx, first, bob.ID), store.ErrNotFound)
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	s := newStore(t)

	_, err := s.Posts().CreatePost(context.Background(), domain.Post{AuthorID: "nobody", Title: "t", Content: "c"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	alice := createUser(t, s, "alice")

	boom := errors.New("boom")
	var id int64
	err := s.WithTx(ctx, func(tx store.Tx) error {
		var err error
		id, err = tx.Posts().CreatePost(ctx, domain.Post{AuthorID: alice.ID, Title: "t", Content: "c"})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Posts().GetPostByID(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound, "rolled back")

	err = s.WithTx(ctx, func(tx store.Tx) error {
		id, err = tx.Posts().CreatePost(ctx, domain.Post{AuthorID: alice.ID, Title: "t", Content: "c"})
		return err
	})
	require.NoError(t, err)

	_, err = s.Posts().GetPostByID(ctx, id)
	require.NoError(t, err)
}
