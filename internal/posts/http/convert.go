package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/postboard/internal/posts/domain"
	"github.com/aussiebroadwan/postboard/internal/posts/service"
	"github.com/aussiebroadwan/postboard/pkg/postsdk"
)

func toUserResponse(u domain.User) postsdk.UserResponse {
	return postsdk.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		MFAEnabled:  u.HasMFA(),
		CreatedAt:   u.CreatedAt,
	}
}

func toPostResponse(p domain.Post) postsdk.PostResponse {
	return postsdk.PostResponse{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostViewResponse(v domain.PostView) postsdk.PostResponse {
	resp := toPostResponse(v.Post)
	resp.AuthorUsername = v.AuthorUsername
	resp.AuthorDisplayName = v.AuthorDisplayName
	resp.DeleteToken = v.DeleteToken
	return resp
}

// postIDFromPath parses the {id} segment. Anything that is not a positive
// integer cannot name a post.
func postIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// apiError maps service errors onto wire errors. Unknown errors are 500s.
func apiError(err error) *postsdk.APIError {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return postsdk.ErrInvalidRequest.WithDescription(err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		return postsdk.ErrInvalidToken
	case errors.Is(err, service.ErrPostNotFound):
		return postsdk.ErrPostNotFound
	case errors.Is(err, service.ErrUserNotFound):
		return postsdk.ErrUserNotFound
	case errors.Is(err, service.ErrNotPostOwner):
		return postsdk.ErrNotPostOwner
	case errors.Is(err, service.ErrDeleteDisabled):
		return postsdk.ErrDeleteDisabled
	case errors.Is(err, service.ErrDeleteRejected):
		return postsdk.ErrInvalidDeleteToken
	case errors.Is(err, service.ErrUsernameTaken):
		return postsdk.ErrUsernameTaken
	case errors.Is(err, service.ErrInvalidCredentials):
		return postsdk.ErrInvalidCredentials
	case errors.Is(err, service.ErrMFARequired):
		return postsdk.ErrMFARequired
	case errors.Is(err, service.ErrInvalidTOTPCode):
		return postsdk.ErrInvalidOTP
	case errors.Is(err, service.ErrMFAAlreadyEnabled):
		return postsdk.ErrMFAAlreadyEnabled
	case errors.Is(err, service.ErrMFANotEnrolled):
		return postsdk.ErrMFANotEnrolled
	case errors.Is(err, service.ErrMFANotEnabled):
		return postsdk.ErrMFANotEnabled
	default:
		return postsdk.ErrServerError
	}
}
