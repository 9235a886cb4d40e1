package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/postboard/internal/posts/domain"
	"github.com/aussiebroadwan/postboard/internal/posts/store/drivers/sqlite"
	"github.com/aussiebroadwan/postboard/pkg/captoken"
	"github.com/aussiebroadwan/postboard/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *sqlite.Store
	users    *UserService
	posts    *PostService
	clock    *time.Time
	keyring  *captoken.Keyring
	issuer   *captoken.Issuer
	verifier *captoken.Verifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	now := time.Unix(1700000000, 0)
	clock := &now
	tick := func() time.Time { return *clock }

	keys, err := captoken.NewKeyring([]byte("test-delete-secret"), nil)
	require.NoError(t, err)
	issuer, err := captoken.NewIssuer(keys, captoken.WithIssuerClock(tick))
	require.NoError(t, err)
	verifier, err := captoken.NewVerifier(keys, captoken.WithVerifierClock(tick))
	require.NoError(t, err)

	return &fixture{
		store:    s,
		users:    &UserService{Store: s, Hasher: cryptox.NewPasswordHasher([]byte("pepper"))},
		posts:    &PostService{Store: s, Issuer: issuer, Verifier: verifier},
		clock:    clock,
		keyring:  keys,
		issuer:   issuer,
		verifier: verifier,
	}
}

func (f *fixture) register(t *testing.T, username string) domain.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), username, "", "correct horse")
	require.NoError(t, err)
	return u
}

func (f *fixture) post(t *testing.T, author domain.User) domain.Post {
	t.Helper()
	p, err := f.posts.CreatePost(context.Background(), author.ID, "hello", "world")
	require.NoError(t, err)
	return p
}

func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}
