package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sa-academy/cms-backend/internal/core/domain"
	"github.com/sa-academy/cms-backend/internal/infrastructure/security"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	nextID   int

	findErr        error // returned by FindByEmail / FindByID when set
	setResetErr    error
	clearResetErr  error
	clearCalls     int
	lastClearedFor string
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	if a.ResetTokenExpiry != nil {
		exp := *a.ResetTokenExpiry
		clone.ResetTokenExpiry = &exp
	}
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Email == a.Email || existing.Username == a.Username {
			return nil, domain.ErrAccountExists
		}
	}
	r.nextID++
	stored := cloneAccount(a)
	stored.ID = fmt.Sprintf("acc-%d", r.nextID)
	r.accounts[stored.ID] = stored
	return cloneAccount(stored), nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) List(_ context.Context) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, cloneAccount(a))
	}
	return out, nil
}

func (r *stubAccountRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a.Role = role
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) DeleteUnprotected(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok || a.Role == domain.RoleSuperAdmin {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *stubAccountRepo) SetResetToken(_ context.Context, id, hash string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setResetErr != nil {
		return r.setResetErr
	}
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.ResetTokenHash = hash
	a.ResetTokenExpiry = &expiry
	return nil
}

func (r *stubAccountRepo) ClearResetToken(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearCalls++
	r.lastClearedFor = id
	if r.clearResetErr != nil {
		return r.clearResetErr
	}
	a, ok := r.accounts[id]
	if !ok || a.ResetTokenHash != hash {
		return nil
	}
	a.ResetTokenHash = ""
	a.ResetTokenExpiry = nil
	return nil
}

func (r *stubAccountRepo) FindByResetToken(_ context.Context, hash string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ResetTokenHash != "" && a.ResetTokenHash == hash {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) ConsumeResetToken(_ context.Context, hash string, now time.Time, passwordHash string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ResetTokenHash == hash && a.ResetTokenExpiry != nil && a.ResetTokenExpiry.After(now) {
			a.PasswordHash = passwordHash
			a.ResetTokenHash = ""
			a.ResetTokenExpiry = nil
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrResetInvalidOrExpired
}

func (r *stubAccountRepo) get(id string) *domain.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAccount(r.accounts[id])
}

// ---------------------------------------------------------------------------
// Other stubs and helpers
// ---------------------------------------------------------------------------

type sentMail struct {
	to, subject, body string
}

type stubMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *stubMailer) last(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		t.Fatalf("expected a mail to have been sent")
	}
	return m.sent[len(m.sent)-1]
}

// tokenFromBody extracts the plaintext token from a reset email.
func tokenFromBody(t *testing.T, body string) string {
	t.Helper()
	const marker = "/reset-password/"
	i := strings.Index(body, marker)
	if i < 0 {
		t.Fatalf("reset link not found in body: %q", body)
	}
	rest := body[i+len(marker):]
	if j := strings.IndexAny(rest, " \n"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

var discardLogger = zerolog.Nop()

func testHasher() *security.BcryptHasher {
	return security.NewBcryptHasher(bcrypt.MinCost)
}

func testIssuer(t *testing.T) *security.JWTIssuer {
	t.Helper()
	issuer, err := security.NewJWTIssuer("secret", "", time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	return issuer
}

func seedAccount(t *testing.T, repo *stubAccountRepo, username, email, password string, role domain.Role) *domain.Account {
	t.Helper()
	hash, err := testHasher().Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	created, err := repo.Create(context.Background(), &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return created
}
