package domain

import (
	"fmt"
	"time"
)

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

// CheckPasswordLength rejects passwords that cannot be hashed.
func CheckPasswordLength(password string) error {
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, MaxPasswordBytes)
	}
	return nil
}

// Account is a registered identity with credentials and a role.
type Account struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// ResetTokenHash and ResetTokenExpiry are set and cleared together.
	ResetTokenHash   string     `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
}

// HasPendingReset reports whether a reset token is outstanding, regardless of expiry.
func (a *Account) HasPendingReset() bool {
	return a.ResetTokenHash != "" && a.ResetTokenExpiry != nil
}

// ResetExpired reports whether the outstanding reset token is no longer redeemable at now.
func (a *Account) ResetExpired(now time.Time) bool {
	return a.ResetTokenExpiry == nil || !a.ResetTokenExpiry.After(now)
}

// Identity is the verified caller context carried by a session token.
type Identity struct {
	AccountID string
	Role      Role
}
