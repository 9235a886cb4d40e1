package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	posthttp "github.com/aussiebroadwan/postboard/internal/posts/http"
	"github.com/aussiebroadwan/postboard/internal/posts/service"
	"github.com/aussiebroadwan/postboard/internal/posts/store/drivers/sqlite"
	"github.com/aussiebroadwan/postboard/pkg/captoken"
	"github.com/aussiebroadwan/postboard/pkg/cryptox"
	"github.com/aussiebroadwan/postboard/pkg/jwtx"
	"github.com/aussiebroadwan/postboard/pkg/postsdk"
	"github.com/aussiebroadwan/postboard/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "postboard-http-test"

// newServer starts the full router over in-memory sqlite. A nil secret
// leaves deletes disabled.
func newServer(t *testing.T, secret []byte) *postsdk.Client {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	keys, err := jwtx.NewEphemeralSessionKeys(testIssuer)
	require.NoError(t, err)

	hasher := cryptox.NewPasswordHasher([]byte("pepper"))
	posts := &service.PostService{Store: st}
	if secret != nil {
		ring, err := captoken.NewKeyring(secret, nil)
		require.NoError(t, err)
		posts.Issuer, err = captoken.NewIssuer(ring)
		require.NoError(t, err)
		posts.Verifier, err = captoken.NewVerifier(ring)
		require.NoError(t, err)
	}

	router := posthttp.NewRouter(keys, "test", st, slogx.Discard())
	router.PostService = posts
	router.UserService = &service.UserService{Store: st, Hasher: hasher}
	router.SessionService = &service.SessionService{
		Store:  st,
		Hasher: hasher,
		Signer: keys,
		Issuer: testIssuer,
		TTL:    time.Hour,
	}
	router.MFAService = &service.MFAService{Store: st, Issuer: testIssuer}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return postsdk.NewClient(srv.URL)
}

func login(t *testing.T, c *postsdk.Client, username string) *postsdk.Session {
	t.Helper()
	ctx := context.Background()

	_, err := c.Register(ctx, postsdk.RegisterRequest{Username: username, Password: "correct horse"})
	require.NoError(t, err)

	s, err := c.Login(ctx, username, "correct horse", "")
	require.NoError(t, err)
	return s
}

func TestDeleteWithToken(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, []byte("secret"))
	alice := login(t, c, "alice")

	created, err := alice.CreatePost(ctx, "hello", "world")
	require.NoError(t, err)
	require.Empty(t, created.DeleteToken)

	post, err := alice.GetPost(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", post.AuthorUsername)
	require.NotEmpty(t, post.DeleteToken)

	anon, err := c.GetPost(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, anon.DeleteToken)

	list, err := c.ListPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list.Posts, 1)
	require.Empty(t, list.Posts[0].DeleteToken)

	require.NoError(t, alice.DeletePost(ctx, created.ID, post.DeleteToken))

	_, err = c.GetPost(ctx, created.ID)
	require.ErrorIs(t, err, postsdk.ErrPostNotFound)

	err = alice.DeletePost(ctx, created.ID, post.DeleteToken)
	require.ErrorIs(t, err, postsdk.ErrPostNotFound)
}

func TestDeleteRejectionsAreUniform(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, []byte("secret"))
	alice := login(t, c, "alice")
	bob := login(t, c, "bob")

	created, err := alice.CreatePost(ctx, "hello", "world")
	require.NoError(t, err)
	post, err := alice.GetPost(ctx, created.ID)
	require.NoError(t, err)

	attempts := []struct {
		name    string
		session *postsdk.Session
		token   string
	}{
		{"missing", alice, ""},
		{"malformed", alice, "not-a-token"},
		{"bad encoding", alice, "1700000000:xyz"},
		{"expired", alice, "1:" + post.DeleteToken[len(post.DeleteToken)-64:]},
		{"other actor", bob, post.DeleteToken},
	}

	var descriptions []string
	for _, a := range attempts {
		err := a.session.DeletePost(ctx, created.ID, a.token)
		require.ErrorIs(t, err, postsdk.ErrInvalidDeleteToken, a.name)

		var apiErr *postsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		descriptions = append(descriptions, apiErr.Description)
	}
	for _, d := range descriptions {
		require.Equal(t, descriptions[0], d)
	}

	_, err = c.GetPost(ctx, created.ID)
	require.NoError(t, err, "post survives rejected deletes")
}

func TestDeleteAfterTransfer(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, []byte("secret"))
	alice := login(t, c, "alice")
	bob := login(t, c, "bob")

	created, err := alice.CreatePost(ctx, "hello", "world")
	require.NoError(t, err)
	post, err := alice.GetPost(ctx, created.ID)
	require.NoError(t, err)

	_, err = bob.TransferPost(ctx, created.ID, "bob")
	require.ErrorIs(t, err, postsdk.ErrNotPostOwner)

	transferred, err := alice.TransferPost(ctx, created.ID, "bob")
	require.NoError(t, err)
	require.Equal(t, bob.User.ID, transferred.AuthorID)

	err = alice.DeletePost(ctx, created.ID, post.DeleteToken)
	require.ErrorIs(t, err, postsdk.ErrInvalidDeleteToken)

	bobView, err := bob.GetPost(ctx, created.ID)
	require.NoError(t, err)
	require.NotEmpty(t, bobView.DeleteToken)

	require.NoError(t, bob.DeletePostForm(ctx, created.ID, bobView.DeleteToken))
}

func TestDeleteRequiresSession(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, []byte("secret"))
	alice := login(t, c, "alice")

	created, err := alice.CreatePost(ctx, "hello", "world")
	require.NoError(t, err)
	post, err := alice.GetPost(ctx, created.ID)
	require.NoError(t, err)

	err = c.NewSession("").DeletePost(ctx, created.ID, post.DeleteToken)
	require.ErrorIs(t, err, postsdk.ErrInvalidToken)

	err = c.NewSession("garbage").DeletePost(ctx, created.ID, post.DeleteToken)
	require.ErrorIs(t, err, postsdk.ErrInvalidToken)

	_, err = c.NewSession("garbage").GetPost(ctx, created.ID)
	require.ErrorIs(t, err, postsdk.ErrInvalidToken)
}

func TestDeleteDisabledWithoutSecret(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, nil)
	alice := login(t, c, "alice")

	created, err := alice.CreatePost(ctx, "hello", "world")
	require.NoError(t, err)

	post, err := alice.GetPost(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, post.DeleteToken)

	forged, err := captoken.Issue(created.ID, alice.User.ID, []byte("guess"), time.Now())
	require.NoError(t, err)
	err = alice.DeletePost(ctx, created.ID, forged)
	require.ErrorIs(t, err, postsdk.ErrDeleteDisabled)

	_, err = c.GetReadiness(ctx)
	var apiErr *postsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestInvalidPostID(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, []byte("secret"))

	_, err := c.GetPost(ctx, -1)
	require.ErrorIs(t, err, postsdk.ErrPostNotFound)

	resp, err := http.Get(c.BaseURL + "/v1/posts/abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRegisterAndLoginErrors(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, []byte("secret"))
	alice := login(t, c, "alice")

	me, err := alice.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", me.Username)
	require.False(t, me.MFAEnabled)

	_, err = c.Register(ctx, postsdk.RegisterRequest{Username: "alice", Password: "correct horse"})
	require.ErrorIs(t, err, postsdk.ErrUsernameTaken)

	_, err = c.Register(ctx, postsdk.RegisterRequest{Username: "x", Password: "correct horse"})
	require.ErrorIs(t, err, postsdk.ErrInvalidRequest)

	_, err = c.Login(ctx, "alice", "wrong password", "")
	require.ErrorIs(t, err, postsdk.ErrInvalidCredentials)
}

func TestHealth(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, []byte("secret"))

	live, err := c.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := c.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.DeleteTokens)
}
