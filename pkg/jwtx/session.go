package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/postboard/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// Signer mints session tokens.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a session token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// SessionKeys is an Ed25519 key pair for session tokens. Keys are generated
// at start-up and live only in memory: restarting the service logs everyone
// out, which is acceptable for sessions and keeps key storage out of scope.
type SessionKeys struct {
	kid    string
	priv   ed25519.PrivateKey
	pub    ed25519.PublicKey
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// NewEphemeralSessionKeys generates a fresh key pair for issuer.
func NewEphemeralSessionKeys(issuer string) (*SessionKeys, error) {
	if issuer == "" {
		return nil, errors.New("jwtx: issuer is required")
	}

	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	priv, err := cryptox.ParseEd25519Key(pemKey)
	if err != nil {
		return nil, err
	}
	kid, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return nil, fmt.Errorf("jwtx: failed to generate key ID: %w", err)
	}

	return &SessionKeys{
		kid:    kid,
		priv:   priv,
		pub:    priv.Public().(ed25519.PublicKey),
		issuer: issuer,
		leeway: 5 * time.Second,
		now:    time.Now,
	}, nil
}

func (k *SessionKeys) KID() string    { return k.kid }
func (k *SessionKeys) Issuer() string { return k.issuer }

// Sign signs claims with EdDSA and stamps the kid header.
func (k *SessionKeys) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = k.kid
	return t.SignedString(k.priv)
}

// Verify parses tokenStr, checks the signature against this key pair and
// validates iss, exp, nbf and sub.
func (k *SessionKeys) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithLeeway(k.leeway),
		jwt.WithTimeFunc(k.now),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid != k.kid {
			return nil, fmt.Errorf("jwtx: unknown kid %q", kid)
		}
		return k.pub, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrInvalidSig, err)
		}
	}

	if err := claims.ValidateIssuer(k.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(k.now(), k.leeway); err != nil {
		return Claims{}, err
	}
	if claims.Subject == "" {
		return Claims{}, ErrNoSubject
	}

	return claims, nil
}
