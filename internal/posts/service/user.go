package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/postboard/internal/posts/domain"
	"github.com/aussiebroadwan/postboard/internal/posts/store"
	"github.com/aussiebroadwan/postboard/pkg/cryptox"
	"github.com/aussiebroadwan/postboard/pkg/idx"
	"github.com/aussiebroadwan/postboard/pkg/slogx"
)

const (
	MinPasswordLength    = 8
	MaxPasswordLength    = 256
	MaxDisplayNameLength = 64
)

var ErrUsernameTaken = errors.New("username already taken")

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)

type UserService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
}

// Register creates a user. displayName defaults to username.
func (s *UserService) Register(ctx context.Context, username, displayName, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = username
	}

	switch {
	case !usernamePattern.MatchString(username):
		return domain.User{}, fmt.Errorf("%w: username must be 3-32 letters, digits, '.', '_' or '-'", ErrInvalidInput)
	case utf8.RuneCountInString(displayName) > MaxDisplayNameLength:
		return domain.User{}, fmt.Errorf("%w: display name longer than %d characters", ErrInvalidInput, MaxDisplayNameLength)
	case len(password) < MinPasswordLength || len(password) > MaxPasswordLength:
		return domain.User{}, fmt.Errorf("%w: password must be %d-%d bytes", ErrInvalidInput, MinPasswordLength, MaxPasswordLength)
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hash,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return s.GetUserByID(ctx, u.ID)
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
