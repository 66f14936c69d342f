package ports

import (
	"context"

	"github.com/sa-academy/cms-backend/internal/core/domain"
)

// LoginResult is what a successful login or registration hands back to the caller.
type LoginResult struct {
	Account *domain.Account
	Token   string
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*LoginResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// AccountService holds the SuperAdmin-only account management operations.
type AccountService interface {
	List(ctx context.Context) ([]*domain.Account, error)
	ChangeRole(ctx context.Context, targetID, role string) (*domain.Account, error)
	Delete(ctx context.Context, targetID string) error
}

// PasswordResetService drives the forgot-password flow.
type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	Redeem(ctx context.Context, token, password, confirmPassword string) (*domain.Account, error)
}
