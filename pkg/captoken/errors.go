package captoken

import "errors"

// Rejection reasons. Each verification step fails with exactly one of these
// so callers and tests can tell them apart; the HTTP layer still collapses
// them into one uniform response.
var (
	ErrMissingSecret = errors.New("captoken: secret not configured")

	ErrMissingToken         = errors.New("captoken: missing token")
	ErrMalformed            = errors.New("captoken: malformed token")
	ErrExpired              = errors.New("captoken: token expired")
	ErrBadSignatureEncoding = errors.New("captoken: invalid signature encoding")
	ErrBadSignature         = errors.New("captoken: invalid signature")
	ErrOwnershipChanged     = errors.New("captoken: resource owner changed")
	ErrNotFound             = errors.New("captoken: resource not found")
)

// Reason returns a short stable label for err, suitable for a log attribute.
// Errors that did not come from this package map to "rejected".
func Reason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingSecret):
		return "configuration_error"
	case errors.Is(err, ErrMissingToken):
		return "missing_token"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrBadSignatureEncoding):
		return "bad_signature_encoding"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrOwnershipChanged):
		return "ownership_changed"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "rejected"
	}
}

// IsRejection reports whether err is a verdict on the token itself rather
// than a configuration or storage failure.
func IsRejection(err error) bool {
	for _, target := range []error{
		ErrMissingToken,
		ErrMalformed,
		ErrExpired,
		ErrBadSignatureEncoding,
		ErrBadSignature,
		ErrOwnershipChanged,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
