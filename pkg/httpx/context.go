package httpx

import (
	"context"

	"github.com/aussiebroadwan/postboard/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyClaims ctxKey = "claims"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID      string
	Username    string
	DisplayName string
}

// PrincipalFromContext returns the caller set by the authn middleware.
// ok is false for anonymous requests.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	if !ok || c.Subject == "" {
		return Principal{}, false
	}
	return Principal{
		UserID:      c.Subject,
		Username:    c.Username,
		DisplayName: c.DisplayName,
	}, true
}

// UserIDFromContext returns the authenticated user id, or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CtxKeyUserID).(string)
	return id
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
