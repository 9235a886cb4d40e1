package postsdk

import "time"

const (
	// DeleteTokenHeader carries the delete capability on DELETE /v1/posts/{id}.
	DeleteTokenHeader = "X-Delete-Token"

	// DeleteTokenFormField carries it on the form fallback POST /v1/posts/{id}/delete.
	DeleteTokenFormField = "deleteToken"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

type RegisterRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Password    string `json:"password"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	MFAEnabled  bool      `json:"mfa_enabled"`
	CreatedAt   time.Time `json:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// OTP is required when the account has TOTP enabled.
	OTP string `json:"otp,omitempty"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type TransferPostRequest struct {
	NewOwner string `json:"new_owner"` // username
}

type PostResponse struct {
	ID                int64     `json:"id"`
	AuthorID          string    `json:"author_id"`
	AuthorUsername    string    `json:"author_username,omitempty"`
	AuthorDisplayName string    `json:"author_display_name,omitempty"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// DeleteToken is only present when the caller owns the post. It expires
	// a few minutes after the response was served.
	DeleteToken string `json:"delete_token,omitempty"`
}

type ListPostsResponse struct {
	Posts []PostResponse `json:"posts"`
}

type TOTPEnrollResponse struct {
	Secret  string `json:"secret"`
	URL     string `json:"otpauth_url"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

type TOTPCodeRequest struct {
	Code string `json:"code"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database     string `json:"database"`
	DeleteTokens string `json:"delete_tokens"`
}
