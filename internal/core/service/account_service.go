package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sa-academy/cms-backend/internal/core/domain"
	"github.com/sa-academy/cms-backend/internal/core/ports"
)

// AccountService manages existing accounts. Callers are expected to have
// passed the SuperAdmin gate already.
type AccountService struct {
	repo   ports.AccountRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, hasher ports.PasswordHasher, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, log: log}
}

func (s *AccountService) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// ChangeRole validates role before touching the store, so an unknown value
// never reaches the record.
func (s *AccountService) ChangeRole(ctx context.Context, targetID, role string) (*domain.Account, error) {
	newRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateRole(ctx, targetID, newRole)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("change role: %w", err)
	}

	s.log.Info().Str("account_id", updated.ID).Str("role", string(updated.Role)).Msg("role changed")
	return updated, nil
}

// Delete removes an account. SuperAdmin accounts can never be deleted.
func (s *AccountService) Delete(ctx context.Context, targetID string) error {
	account, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}
	if account.Role == domain.RoleSuperAdmin {
		return domain.ErrProtectedAccount
	}

	if err := s.repo.DeleteUnprotected(ctx, account.ID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Msg("account deleted")
	return nil
}

// EnsureSuperAdmin creates a SuperAdmin with the given credentials, or
// promotes the existing account registered under email. The password of an
// existing account is left untouched.
func (s *AccountService) EnsureSuperAdmin(ctx context.Context, username, email, password string) (*domain.Account, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == domain.RoleSuperAdmin {
			return existing, nil
		}
		promoted, err := s.repo.UpdateRole(ctx, existing.ID, domain.RoleSuperAdmin)
		if err != nil {
			return nil, fmt.Errorf("promote superadmin: %w", err)
		}
		s.log.Info().Str("account_id", promoted.ID).Msg("account promoted to SuperAdmin")
		return promoted, nil
	case !errors.Is(err, domain.ErrAccountNotFound):
		return nil, fmt.Errorf("find superadmin: %w", err)
	}

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required to create a SuperAdmin", domain.ErrInvalidInput)
	}
	if err := domain.CheckPasswordLength(password); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("create superadmin: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create superadmin: %w", err)
	}

	s.log.Info().Str("account_id", created.ID).Msg("SuperAdmin created")
	return created, nil
}
