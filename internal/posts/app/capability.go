package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/postboard/pkg/captoken"
)

// InitDeleteTokens builds the delete token issuer and verifier from cfg.
//
// A missing secret is not fatal: reads keep working, both return values are
// nil, and every delete is refused until the service is restarted with a
// secret. The condition is logged at error level and surfaced by /readyz.
func InitDeleteTokens(cfg Config, logger *slog.Logger) (*captoken.Issuer, *captoken.Verifier, error) {
	keys, err := captoken.NewKeyring([]byte(cfg.DeleteTokenSecret), []byte(cfg.DeleteTokenSecretPrevious))
	if errors.Is(err, captoken.ErrMissingSecret) {
		logger.Error("no delete token secret configured, post deletion disabled",
			"env", "DELETE_TOKEN_SECRET",
		)
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build delete token keyring: %w", err)
	}

	issuer, err := captoken.NewIssuer(keys)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create delete token issuer: %w", err)
	}
	verifier, err := captoken.NewVerifier(keys, captoken.WithMaxAge(cfg.DeleteTokenMaxAge))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create delete token verifier: %w", err)
	}

	logger.Info("delete tokens enabled",
		"max_age", verifier.MaxAge(),
		"rotating", keys.Rotating(),
		"secret", keys.Active(),
	)
	return issuer, verifier, nil
}
