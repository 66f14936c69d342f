package ports

import (
	"context"
	"time"

	"github.com/sa-academy/cms-backend/internal/core/domain"
)

// AccountRepository defines persistence for accounts. Every mutation is a
// single-document operation; the store's per-record atomicity is what keeps
// concurrent requests from losing updates.
type AccountRepository interface {
	// Create inserts a new account. Returns domain.ErrAccountExists when the
	// email or username is already taken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)

	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error)
	// DeleteUnprotected removes the account unless its role is SuperAdmin.
	// Returns domain.ErrAccountNotFound when nothing was removed.
	DeleteUnprotected(ctx context.Context, id string) error

	// SetResetToken stores a pending reset, replacing any previous one.
	SetResetToken(ctx context.Context, id, tokenHash string, expiry time.Time) error
	// ClearResetToken removes the pending reset only if it still carries tokenHash.
	ClearResetToken(ctx context.Context, id, tokenHash string) error
	// FindByResetToken looks an account up by token hash, ignoring expiry.
	FindByResetToken(ctx context.Context, tokenHash string) (*domain.Account, error)
	// ConsumeResetToken sets passwordHash and clears the pending reset in one
	// update, provided the hash matches and the expiry is after now.
	// Returns domain.ErrResetInvalidOrExpired when no account matched.
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (*domain.Account, error)
}
