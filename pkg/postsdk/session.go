package postsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Session is an authenticated client. It does not refresh: log in again once
// ExpiresAt has passed.
type Session struct {
	client    *Client
	token     string
	expiresAt time.Time

	// User is the account that logged in; zero for NewSession.
	User UserResponse
}

func (s *Session) Token() string        { return s.token }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Me returns the logged-in user.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	var out UserResponse
	if err := s.client.doJSON(ctx, http.MethodGet, "/v1/users/me", s.token, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreatePost(ctx context.Context, title, content string) (*PostResponse, error) {
	var out PostResponse
	req := CreatePostRequest{Title: title, Content: content}
	if err := s.client.doJSON(ctx, http.MethodPost, "/v1/posts", s.token, req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListPosts(ctx context.Context, limit int) (*ListPostsResponse, error) {
	return listPosts(ctx, s.client, s.token, limit)
}

// GetPost reads a post. When the session owns it, DeleteToken is set.
func (s *Session) GetPost(ctx context.Context, id int64) (*PostResponse, error) {
	return getPost(ctx, s.client, s.token, id)
}

// DeletePost deletes a post using a delete token from GetPost.
func (s *Session) DeletePost(ctx context.Context, id int64, deleteToken string) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, postPath(id), nil, s.token,
		map[string]string{DeleteTokenHeader: deleteToken})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// DeletePostForm is DeletePost through the form endpoint.
func (s *Session) DeletePostForm(ctx context.Context, id int64, deleteToken string) error {
	form := url.Values{}
	form.Set(DeleteTokenFormField, deleteToken)

	resp, err := s.client.doRequest(ctx, http.MethodPost, postPath(id)+"/delete",
		strings.NewReader(form.Encode()), s.token,
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// TransferPost hands a post to another user by username.
func (s *Session) TransferPost(ctx context.Context, id int64, newOwner string) (*PostResponse, error) {
	var out PostResponse
	req := TransferPostRequest{NewOwner: newOwner}
	if err := s.client.doJSON(ctx, http.MethodPost, postPath(id)+"/transfer", s.token, req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnrollTOTP starts TOTP enrolment. MFA is enforced only after VerifyTOTP.
func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	var out TOTPEnrollResponse
	if err := s.client.doJSON(ctx, http.MethodPost, "/v1/mfa/totp/enroll", s.token, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) VerifyTOTP(ctx context.Context, code string) error {
	return s.client.doJSON(ctx, http.MethodPost, "/v1/mfa/totp/verify", s.token,
		TOTPCodeRequest{Code: code}, nil, http.StatusNoContent)
}

func (s *Session) RemoveMFA(ctx context.Context, code string) error {
	return s.client.doJSON(ctx, http.MethodDelete, "/v1/mfa/totp", s.token,
		TOTPCodeRequest{Code: code}, nil, http.StatusNoContent)
}
