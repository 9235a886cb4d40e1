package http

import (
	"net/http"

	"github.com/aussiebroadwan/postboard/internal/posts/service"
	"github.com/aussiebroadwan/postboard/pkg/httpx"
	"github.com/aussiebroadwan/postboard/pkg/postsdk"
	"github.com/aussiebroadwan/postboard/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleRegister handles POST /v1/users
//
//	@Summary		Register
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		postsdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	postsdk.UserResponse	"Created user"
//	@Failure		400		{object}	postsdk.ErrorResponse	"Invalid request"
//	@Failure		409		{object}	postsdk.ErrorResponse	"Username taken"
//	@Failure		429		{object}	postsdk.ErrorResponse	"Rate limited"
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req postsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		postsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return
	}

	user, err := h.UserService.Register(ctx, req.Username, req.DisplayName, req.Password)
	if err != nil {
		apiErr := apiError(err)
		if apiErr == postsdk.ErrServerError {
			log.Error("failed to register user", "err", err)
		}
		apiErr.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleMe handles GET /v1/users/me
//
//	@Summary		Current user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	postsdk.UserResponse	"User"
//	@Failure		401	{object}	postsdk.ErrorResponse	"Invalid or missing session"
//	@Router			/v1/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.GetUserByID(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		apiErr := apiError(err)
		if apiErr == postsdk.ErrUserNotFound {
			// A valid session for a deleted account.
			apiErr = postsdk.ErrInvalidToken
		} else if apiErr == postsdk.ErrServerError {
			log.Error("failed to load user", "err", err)
		}
		apiErr.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
