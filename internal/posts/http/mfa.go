package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/postboard/internal/posts/service"
	"github.com/aussiebroadwan/postboard/pkg/httpx"
	"github.com/aussiebroadwan/postboard/pkg/postsdk"
	"github.com/aussiebroadwan/postboard/pkg/slogx"
)

type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /v1/mfa/totp/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP secret for the authenticated user. MFA is enforced after the first code is verified.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	postsdk.TOTPEnrollResponse	"TOTP secret and otpauth URL"
//	@Failure		400	{object}	postsdk.ErrorResponse		"MFA already enabled"
//	@Failure		401	{object}	postsdk.ErrorResponse		"Invalid or missing session"
//	@Router			/v1/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	enrollment, err := h.MFAService.EnrollTOTP(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		apiErr := apiError(err)
		if apiErr == postsdk.ErrServerError {
			log.Error("failed to enroll TOTP", "err", err)
		}
		apiErr.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, postsdk.TOTPEnrollResponse{
		Secret:  enrollment.Secret,
		URL:     enrollment.URL,
		Issuer:  enrollment.Issuer,
		Account: enrollment.Account,
	})
}

// HandleVerify handles POST /v1/mfa/totp/verify
//
//	@Summary		Verify TOTP code and enable MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	postsdk.TOTPCodeRequest	true	"TOTP code"
//	@Success		204		"MFA enabled"
//	@Failure		400		{object}	postsdk.ErrorResponse	"Not enrolled or already enabled"
//	@Failure		401		{object}	postsdk.ErrorResponse	"Invalid session or code"
//	@Router			/v1/mfa/totp/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	h.withCode(w, r, "verify TOTP", h.MFAService.VerifyTOTP)
}

// HandleRemove handles DELETE /v1/mfa/totp
//
//	@Summary		Disable MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	postsdk.TOTPCodeRequest	true	"Current TOTP code"
//	@Success		204		"MFA disabled"
//	@Failure		400		{object}	postsdk.ErrorResponse	"MFA not enabled"
//	@Failure		401		{object}	postsdk.ErrorResponse	"Invalid session or code"
//	@Router			/v1/mfa/totp [delete].
func (h *MFAHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	h.withCode(w, r, "remove MFA", h.MFAService.RemoveMFA)
}

func (h *MFAHandler) withCode(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	fn func(ctx context.Context, userID, code string) error,
) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req postsdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil || req.Code == "" {
		postsdk.ErrInvalidRequest.WithDescription("code is required").WriteError(w)
		return
	}

	if err := fn(ctx, httpx.UserIDFromContext(ctx), req.Code); err != nil {
		apiErr := apiError(err)
		if apiErr == postsdk.ErrServerError {
			log.Error("failed to "+action, "err", err)
		}
		apiErr.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
