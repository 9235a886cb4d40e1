package service

import "errors"

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNotPostOwner    = errors.New("caller does not own this post")
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidInput    = errors.New("invalid input")

	// ErrDeleteDisabled means no delete token secret is configured. Deletes
	// are refused rather than accepted unsigned.
	ErrDeleteDisabled = errors.New("post deletion is disabled: no delete token secret configured")

	// ErrDeleteRejected wraps every delete token rejection. The captoken
	// sentinel is wrapped alongside it for logging.
	ErrDeleteRejected = errors.New("delete token rejected")
)
