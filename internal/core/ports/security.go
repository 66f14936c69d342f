package ports

import "github.com/sa-academy/cms-backend/internal/core/domain"

// PasswordHasher is a salted one-way transform for credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify never fails on malformed input; it reports false instead.
	Verify(password, hash string) bool
}

// TokenIssuer mints and checks session tokens.
type TokenIssuer interface {
	Issue(accountID string, role domain.Role) (string, error)
	// Validate returns domain.ErrInvalidToken for every failure cause.
	Validate(token string) (domain.Identity, error)
}
