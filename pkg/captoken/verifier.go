package captoken

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultMaxAge is how long a token stays valid after issuance.
const DefaultMaxAge = 5 * time.Minute

// OwnerLookup reads the current owner of a resource. Implementations must
// hit the backing store on every call; a cached owner defeats the point of
// re-checking. A missing resource is reported with an error wrapping
// ErrNotFound.
type OwnerLookup interface {
	ResourceOwner(ctx context.Context, resourceID int64) (string, error)
}

// OwnerLookupFunc adapts a function to OwnerLookup.
type OwnerLookupFunc func(ctx context.Context, resourceID int64) (string, error)

func (f OwnerLookupFunc) ResourceOwner(ctx context.Context, resourceID int64) (string, error) {
	return f(ctx, resourceID)
}

// VerifySignature runs the stateless checks against a single secret:
// presence, shape, age window in both directions, signature encoding and
// the MAC itself. Each failure returns its own sentinel error.
func VerifySignature(
	raw string,
	resourceID int64,
	actorID string,
	secret []byte,
	now time.Time,
	maxAge time.Duration,
) (Token, error) {
	if len(secret) == 0 {
		return Token{}, ErrMissingSecret
	}
	return verify(raw, resourceID, actorID, []Secret{secret}, now, maxAge)
}

// Verifier checks tokens minted by an Issuer sharing the same keyring.
type Verifier struct {
	keys   *Keyring
	maxAge time.Duration
	now    Clock
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithMaxAge sets the token lifetime. Non-positive values keep the default.
func WithMaxAge(d time.Duration) VerifierOption {
	return func(v *Verifier) {
		if d > 0 {
			v.maxAge = d
		}
	}
}

// WithVerifierClock overrides the verifier's time source.
func WithVerifierClock(c Clock) VerifierOption {
	return func(v *Verifier) { v.now = c }
}

// NewVerifier returns a Verifier bound to keys. A nil keyring fails closed.
func NewVerifier(keys *Keyring, opts ...VerifierOption) (*Verifier, error) {
	if keys == nil {
		return nil, ErrMissingSecret
	}

	v := &Verifier{keys: keys, maxAge: DefaultMaxAge, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// MaxAge returns the configured token lifetime.
func (v *Verifier) MaxAge() time.Duration { return v.maxAge }

// CheckSignature runs the stateless checks, accepting a signature under
// either secret of the keyring.
func (v *Verifier) CheckSignature(raw string, resourceID int64, actorID string) (Token, error) {
	return verify(raw, resourceID, actorID, v.keys.verifying(), v.now(), v.maxAge)
}

// Verify runs every check: the stateless ones, then a fresh read of the
// resource's owner. A valid signature only proves the token was issued to
// actorID for resourceID at some point; the owner read proves it still holds.
func (v *Verifier) Verify(
	ctx context.Context,
	owners OwnerLookup,
	raw string,
	resourceID int64,
	actorID string,
) error {
	if _, err := v.CheckSignature(raw, resourceID, actorID); err != nil {
		return err
	}

	owner, err := owners.ResourceOwner(ctx, resourceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("captoken: owner lookup: %w", err)
	}
	if owner != actorID {
		return ErrOwnershipChanged
	}

	return nil
}

func verify(
	raw string,
	resourceID int64,
	actorID string,
	secrets []Secret,
	now time.Time,
	maxAge time.Duration,
) (Token, error) {
	// 1. presence
	if raw == "" {
		return Token{}, ErrMissingToken
	}

	// 2. shape
	issuedAt, sig, err := split(raw)
	if err != nil {
		return Token{}, err
	}

	// 3. age, both directions
	nowUnix := now.Unix()
	if issuedAt > nowUnix || nowUnix-issuedAt > int64(maxAge/time.Second) {
		return Token{}, ErrExpired
	}

	// 4. encoding
	given, err := decodeSignature(sig)
	if err != nil {
		return Token{}, err
	}

	// 5. MAC, no early exit across secrets
	matched := false
	for _, secret := range secrets {
		if Equal(given, Sign(resourceID, actorID, issuedAt, secret)) {
			matched = true
		}
	}
	if !matched {
		return Token{}, ErrBadSignature
	}

	return Token{IssuedAt: issuedAt, Signature: given}, nil
}
