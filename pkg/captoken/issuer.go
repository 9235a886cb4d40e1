package captoken

import (
	"encoding/hex"
	"strconv"
	"time"
)

// Clock returns the current instant. Issuer and Verifier read time only
// through their Clock so expiry boundaries can be tested deterministically.
type Clock func() time.Time

// Issue mints a token binding resourceID, actorID and now under secret.
// It doesn't check ownership; callers only reach it after establishing that
// actorID owns resourceID.
func Issue(resourceID int64, actorID string, secret []byte, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}

	issuedAt := now.Unix()
	sig := Sign(resourceID, actorID, issuedAt, secret)
	return strconv.FormatInt(issuedAt, 10) + ":" + hex.EncodeToString(sig), nil
}

// Issuer mints tokens under a keyring's active secret.
type Issuer struct {
	keys *Keyring
	now  Clock
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithIssuerClock overrides the issuer's time source.
func WithIssuerClock(c Clock) IssuerOption {
	return func(i *Issuer) { i.now = c }
}

// NewIssuer returns an Issuer bound to keys. A nil keyring means no secret
// was configured, and issuance is refused.
func NewIssuer(keys *Keyring, opts ...IssuerOption) (*Issuer, error) {
	if keys == nil {
		return nil, ErrMissingSecret
	}

	i := &Issuer{keys: keys, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue mints a token for (resourceID, actorID) at the issuer's current time.
func (i *Issuer) Issue(resourceID int64, actorID string) (string, error) {
	return Issue(resourceID, actorID, i.keys.Active(), i.now())
}
