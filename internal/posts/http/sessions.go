package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/postboard/internal/posts/service"
	"github.com/aussiebroadwan/postboard/pkg/httpx"
	"github.com/aussiebroadwan/postboard/pkg/postsdk"
	"github.com/aussiebroadwan/postboard/pkg/slogx"
)

type SessionsHandler struct {
	SessionService *service.SessionService
}

// HandleLogin handles POST /v1/sessions
//
//	@Summary		Log in
//	@Description	Exchanges username and password (plus a TOTP code when MFA is enabled) for a session token.
//	@Description	The token is an EdDSA-signed JWT sent as "Authorization: Bearer {token}".
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		postsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	postsdk.LoginResponse	"Session"
//	@Failure		400		{object}	postsdk.ErrorResponse	"Invalid request"
//	@Failure		401		{object}	postsdk.ErrorResponse	"Invalid credentials or one-time code"
//	@Failure		409		{object}	postsdk.ErrorResponse	"One-time code required"
//	@Failure		429		{object}	postsdk.ErrorResponse	"Rate limited"
//	@Router			/v1/sessions [post].
func (h *SessionsHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req postsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		postsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return
	}
	if req.Username == "" || req.Password == "" {
		postsdk.ErrInvalidRequest.WithDescription("username and password are required").WriteError(w)
		return
	}

	session, err := h.SessionService.Login(ctx, req.Username, req.Password, req.OTP)
	if err != nil {
		apiErr := apiError(err)
		if apiErr == postsdk.ErrServerError {
			log.Error("login failed", "err", err)
		}
		apiErr.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, postsdk.LoginResponse{
		AccessToken: session.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(session.ExpiresAt).Seconds()),
		ExpiresAt:   session.ExpiresAt,
		User:        toUserResponse(session.User),
	})
}
