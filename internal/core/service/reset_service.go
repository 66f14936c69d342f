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

const (
	resetSubject    = "Password Reset Link (Valid for 10 min)"
	rollbackTimeout = 5 * time.Second
)

const resetBodyTemplate = `You requested a password reset.
Please click the following link (valid for 10 minutes):

%s

If you did not request this, please ignore this email.
`

// ResetThrottle limits how often a reset email goes to the same address (Redis).
type ResetThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// ResetOptions configures PasswordResetService.
type ResetOptions struct {
	// BaseURL is the frontend origin the reset link points at.
	BaseURL string
	// Throttle is optional; nil disables throttling.
	Throttle ResetThrottle
	// ResponseFloor is the minimum duration of RequestReset.
	ResponseFloor time.Duration
}

// PasswordResetService issues and redeems single-use password reset tokens.
type PasswordResetService struct {
	repo     ports.AccountRepository
	hasher   ports.PasswordHasher
	mailer   ports.Mailer
	throttle ResetThrottle
	baseURL  string
	floor    time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

func NewPasswordResetService(
	repo ports.AccountRepository,
	hasher ports.PasswordHasher,
	mailer ports.Mailer,
	log zerolog.Logger,
	opts ResetOptions,
) *PasswordResetService {
	return &PasswordResetService{
		repo:     repo,
		hasher:   hasher,
		mailer:   mailer,
		throttle: opts.Throttle,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		floor:    opts.ResponseFloor,
		now:      time.Now,
		log:      log,
	}
}

// RequestReset mails a reset link when email belongs to an account. The
// result is the same whether or not it does; only store and delivery
// failures are reported.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	started := time.Now()
	err := s.requestReset(ctx, normalizeEmail(email))
	s.waitFloor(ctx, started)
	return err
}

func (s *PasswordResetService) requestReset(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("reset throttle check failed, continuing")
		} else if !allowed {
			s.log.Debug().Msg("reset request throttled")
			return nil
		}
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return fmt.Errorf("request reset: %w", err)
	}

	token, hash, err := domain.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("request reset: %w", err)
	}
	if err := s.repo.SetResetToken(ctx, account.ID, hash, s.now().Add(domain.ResetTokenTTL)); err != nil {
		return fmt.Errorf("request reset: %w", err)
	}

	body := fmt.Sprintf(resetBodyTemplate, s.resetURL(token))
	if err := s.mailer.Send(ctx, account.Email, resetSubject, body); err != nil {
		s.log.Error().Err(err).Str("account_id", account.ID).Msg("reset email delivery failed")
		s.rollback(ctx, account.ID, hash)
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailure, err)
	}

	s.log.Info().Str("account_id", account.ID).Msg("password reset requested")
	return nil
}

// rollback clears the pending reset written for hash. It runs even when the
// caller has gone away, so no undeliverable token stays on the record.
func (s *PasswordResetService) rollback(ctx context.Context, accountID, hash string) {
	rbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	if err := s.repo.ClearResetToken(rbCtx, accountID, hash); err != nil {
		s.log.Error().Err(err).Str("account_id", accountID).Msg("failed to roll back pending reset")
	}
}

// Redeem sets a new password using a reset token. Unknown, expired and
// already-used tokens are indistinguishable. A confirmation mismatch is
// reported only once the token itself has been accepted.
func (s *PasswordResetService) Redeem(ctx context.Context, token, password, confirmPassword string) (*domain.Account, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrResetInvalidOrExpired
	}
	hash := domain.HashResetToken(token)

	account, err := s.repo.FindByResetToken(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrResetInvalidOrExpired
		}
		return nil, fmt.Errorf("redeem reset: %w", err)
	}

	now := s.now()
	if account.ResetExpired(now) {
		if err := s.repo.ClearResetToken(ctx, account.ID, hash); err != nil {
			s.log.Warn().Err(err).Str("account_id", account.ID).Msg("failed to clear expired reset")
		}
		return nil, domain.ErrResetInvalidOrExpired
	}

	if password != confirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if err := domain.CheckPasswordLength(password); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("redeem reset: %w", err)
	}

	updated, err := s.repo.ConsumeResetToken(ctx, hash, now, passwordHash)
	if err != nil {
		if errors.Is(err, domain.ErrResetInvalidOrExpired) {
			return nil, domain.ErrResetInvalidOrExpired
		}
		return nil, fmt.Errorf("redeem reset: %w", err)
	}

	s.log.Info().Str("account_id", updated.ID).Msg("password reset completed")
	return updated, nil
}

func (s *PasswordResetService) resetURL(token string) string {
	return s.baseURL + "/reset-password/" + token
}

func (s *PasswordResetService) waitFloor(ctx context.Context, started time.Time) {
	remaining := s.floor - time.Since(started)
	if remaining <= 0 {
		return
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
