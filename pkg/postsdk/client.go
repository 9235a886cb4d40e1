package postsdk

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client talks to a postboard server without credentials.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/users", "", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a Session. otp may be empty for accounts
// without MFA; accounts with MFA get ErrMFARequired.
func (c *Client) Login(ctx context.Context, username, password, otp string) (*Session, error) {
	var out LoginResponse
	req := LoginRequest{Username: username, Password: password, OTP: otp}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/sessions", "", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &Session{
		client:    c,
		token:     out.AccessToken,
		expiresAt: out.ExpiresAt,
		User:      out.User,
	}, nil
}

// NewSession wraps an existing bearer token.
func (c *Client) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// ListPosts returns the newest posts. limit <= 0 uses the server default.
func (c *Client) ListPosts(ctx context.Context, limit int) (*ListPostsResponse, error) {
	return listPosts(ctx, c, "", limit)
}

// GetPost reads a post anonymously; no delete token is ever returned.
func (c *Client) GetPost(ctx context.Context, id int64) (*PostResponse, error) {
	return getPost(ctx, c, "", id)
}

func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func listPosts(ctx context.Context, c *Client, bearer string, limit int) (*ListPostsResponse, error) {
	path := "/v1/posts"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out ListPostsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, bearer, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func getPost(ctx context.Context, c *Client, bearer string, id int64) (*PostResponse, error) {
	var out PostResponse
	if err := c.doJSON(ctx, http.MethodGet, postPath(id), bearer, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func postPath(id int64) string {
	return "/v1/posts/" + strconv.FormatInt(id, 10)
}
