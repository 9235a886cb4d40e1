package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aussiebroadwan/postboard/internal/posts/domain"
	"github.com/aussiebroadwan/postboard/internal/posts/store"
	"github.com/aussiebroadwan/postboard/pkg/cryptox"
	"github.com/aussiebroadwan/postboard/pkg/jwtx"
	"github.com/aussiebroadwan/postboard/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMFARequired        = errors.New("one-time code required")
)

// Session is a signed bearer token for a logged-in user.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

type SessionService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks username and password, then the TOTP code when the user has
// MFA enabled, and returns a signed session.
func (s *SessionService) Login(ctx context.Context, username, password, otpCode string) (Session, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return Session{}, fmt.Errorf("failed to get user: %w", err)
		}
		// Spend the same argon2 time for unknown users.
		_ = s.Hasher.Verify(password, s.fallbackHash())
		return Session{}, ErrInvalidCredentials
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		log.Info("login failed", "user_id", user.ID, "reason", "password")
		return Session{}, ErrInvalidCredentials
	}

	amr := []string{jwtx.AMRPassword}
	if user.HasMFA() {
		if otpCode == "" {
			return Session{}, ErrMFARequired
		}
		if !totp.Validate(otpCode, *user.MFASecret) {
			log.Info("login failed", "user_id", user.ID, "reason", "otp")
			return Session{}, ErrInvalidTOTPCode
		}
		amr = append(amr, jwtx.AMROTP, jwtx.AMRMFA)
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	now := s.now()

	claims := jwtx.NewSessionClaims(user.ID, user.Username, user.DisplayName, amr, ttl, s.Issuer, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign session: %w", err)
	}

	log.Info("login succeeded", "user_id", user.ID, "amr", amr)
	return Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

func (s *SessionService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash("postboard-unknown-user")
	})
	return s.dummyHash
}
