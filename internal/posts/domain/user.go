package domain

import "time"

type User struct {
	ID           string
	Username     string
	DisplayName  string
	PasswordHash string     // argon2id PHC string
	MFAEnabled   *time.Time // set once a TOTP code has been confirmed
	MFASecret    *string    // base32 TOTP secret, pending or enabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasMFA reports whether login requires a TOTP code.
func (u User) HasMFA() bool {
	return u.MFAEnabled != nil && u.MFASecret != nil
}
