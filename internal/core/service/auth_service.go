package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sa-academy/cms-backend/internal/core/domain"
	"github.com/sa-academy/cms-backend/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.AccountRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(repo ports.AccountRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a User account and signs it in.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*ports.LoginResult, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}
	if err := domain.CheckPasswordLength(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(created.ID, created.Role)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("account_id", created.ID).Msg("account registered")
	return &ports.LoginResult{Account: created, Token: token}, nil
}

// Authenticate checks email and password. An unknown email and a wrong
// password produce the same error, and both paths pay for a bcrypt comparison.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.hasher.Verify(password, s.placeholderHash())
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

// Login authenticates and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	account, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &ports.LoginResult{Account: account, Token: token}, nil
}

// placeholderHash is compared against when no account exists so that the
// response time does not reveal whether an email is registered.
func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("placeholder-password")
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to build placeholder hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
